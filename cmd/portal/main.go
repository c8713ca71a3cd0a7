package main

import (
	"fmt"
	"html/template"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/dasHimanshuSekhar/account-ui/internal/config"
	"github.com/dasHimanshuSekhar/account-ui/internal/handlers"
	"github.com/dasHimanshuSekhar/account-ui/internal/ledger"
	"github.com/dasHimanshuSekhar/account-ui/internal/ledgerapi"
	"github.com/dasHimanshuSekhar/account-ui/internal/logger"
	"github.com/dasHimanshuSekhar/account-ui/internal/middleware"
	"github.com/dasHimanshuSekhar/account-ui/internal/session"
	"github.com/dasHimanshuSekhar/account-ui/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the session store
	db, err := session.Open(appConfig.SessionDB)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	sessions, err := session.NewManager(db, appConfig.SessionSecret, appConfig.SessionTimeout, appConfig.AdminMobile)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	// Remote ledger API client
	api := ledgerapi.New(appConfig.LedgerAPIURL, &http.Client{})

	// Register custom form validators
	validator.Register()

	// Initialize handlers
	siteHandler := handlers.NewSiteHandler()
	authHandler := handlers.NewAuthHandler(api, sessions)
	transactionHandler := handlers.NewTransactionHandler(api)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	router.SetFuncMap(template.FuncMap{
		"isCredit": ledger.IsCreditCategory,
	})
	router.LoadHTMLGlob("web/templates/*.html")

	// Public routes
	router.GET("/", siteHandler.Home)
	router.POST("/theme", siteHandler.ToggleTheme)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("/transactions")
	protected.Use(middleware.RequireSession(sessions))
	protected.GET("", transactionHandler.List)
	protected.GET("/new", transactionHandler.ShowAddForm)
	protected.POST("/new", transactionHandler.Add)
	protected.GET("/:id/attachment", transactionHandler.Attachment)

	log.Infof("Starting account portal on port %s", appConfig.Port)
	log.Infof("Remote ledger API at %s", appConfig.LedgerAPIURL)
	return router.Run(":" + appConfig.Port)
}
