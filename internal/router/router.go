package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"apoteka/internal/auth"
	"apoteka/internal/config"
	apperrors "apoteka/internal/errors"
	"apoteka/internal/handler"
	"apoteka/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users auth.UserResolver,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	medicineHandler *handler.MedicineHandler,
	cartHandler *handler.CartHandler,
	taskHandler *handler.TaskHandler,
	lookupHandler *handler.LookupHandler,
	climateHandler *handler.ClimateHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes. The JWT middleware reads the access_token cookie and
	// verifies signature and expiry; CurrentUser then resolves the subject
	// to a user record.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.CookieName + ",header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			he := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
			return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
		},
	}), auth.CurrentUser(users))

	// Profile routes
	secured.GET("/me", userHandler.Me)
	secured.PUT("/me", userHandler.UpdateMe)

	// Inventory routes
	secured.GET("/medicine", medicineHandler.List)
	secured.POST("/medicine", medicineHandler.Create)
	secured.GET("/medicine/expiring-soon", medicineHandler.ExpiringSoon)
	secured.GET("/medicine/:id", medicineHandler.Get)
	secured.PUT("/medicine/:id", medicineHandler.Update)
	secured.DELETE("/medicine/:id", medicineHandler.Delete)
	secured.POST("/medicine/:id/adjust", medicineHandler.AdjustQuantity)
	secured.GET("/medicine/:id/stock-log", medicineHandler.StockHistory)

	// Cart routes
	secured.POST("/shopping-cart", cartHandler.Add)
	secured.GET("/shopping-cart", cartHandler.List)
	secured.DELETE("/shopping-cart/:id", cartHandler.Remove)
	secured.POST("/shopping-cart/checkout", cartHandler.Checkout)

	// Task and notification routes
	secured.POST("/tasks", taskHandler.Create)
	secured.GET("/tasks", taskHandler.List)
	secured.GET("/tasks/my", taskHandler.MyTasks)
	secured.GET("/tasks/:id", taskHandler.Get)
	secured.PUT("/tasks/:id", taskHandler.Update)
	secured.PUT("/tasks/:id/assign", taskHandler.Assign)
	secured.DELETE("/tasks/:id", taskHandler.Delete)
	secured.GET("/notifications", taskHandler.Notifications)
	secured.PUT("/notifications/:id/read", taskHandler.MarkNotificationRead)

	// Lookup tables
	secured.GET("/medicine-types", lookupHandler.ListMedicineTypes)
	secured.POST("/medicine-types", lookupHandler.CreateMedicineType)
	secured.PUT("/medicine-types/:id", lookupHandler.UpdateMedicineType)
	secured.DELETE("/medicine-types/:id", lookupHandler.DeleteMedicineType)
	secured.GET("/suppliers", lookupHandler.ListSuppliers)
	secured.POST("/suppliers", lookupHandler.CreateSupplier)
	secured.PUT("/suppliers/:id", lookupHandler.UpdateSupplier)
	secured.DELETE("/suppliers/:id", lookupHandler.DeleteSupplier)

	// Climate monitoring
	secured.POST("/temperature-humidity", climateHandler.Record)
	secured.GET("/temperature-humidity", climateHandler.List)
	secured.GET("/temperature-humidity/:id", climateHandler.Get)
	secured.PUT("/temperature-humidity/:id", climateHandler.Update)
	secured.DELETE("/temperature-humidity/:id", climateHandler.Delete)

	// Technician management is administrator only
	admins := secured.Group("/technicians", auth.RequireRole(model.RoleAdministrator))
	admins.GET("", userHandler.ListTechnicians)
	admins.POST("", userHandler.CreateTechnician)
	admins.PUT("/:id/status", userHandler.UpdateTechnicianStatus)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
