// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/config"
	"github.com/your-org/ticketing-storefront/internal/domain/cart"
	"github.com/your-org/ticketing-storefront/internal/domain/checkout"
	"github.com/your-org/ticketing-storefront/internal/domain/event"
	"github.com/your-org/ticketing-storefront/internal/domain/order"
	"github.com/your-org/ticketing-storefront/internal/domain/organizer"
	"github.com/your-org/ticketing-storefront/internal/domain/payment"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/domain/ticket"
	"github.com/your-org/ticketing-storefront/internal/domain/user"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/ticketing-storefront/internal/pkg/pdf"
)

// Dependencies carries the wired services the route handlers need
type Dependencies struct {
	Config     *config.Config
	Sessions   *session.Store
	Carts      *cart.Store
	Orders     *order.Store
	Events     *event.Service
	Tickets    *ticket.Service
	Users      *user.Service
	Organizers *organizer.Service
	Payments   *payment.Service
	Checkout   *checkout.Service
	PDF        *pdf.Service
}

// SetupRoutes wires every route group onto the API router
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	setupAuthRoutes(rg, deps)
	setupEventRoutes(rg, deps)
	setupCartRoutes(rg, deps)
	setupCheckoutRoutes(rg, deps)
	setupOrderRoutes(rg, deps)
	setupTicketRoutes(rg, deps)
	setupProfileRoutes(rg, deps)
	setupOrganizerRoutes(rg, deps)
	setupPaymentRoutes(rg, deps)
}

func setupAuthRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Sessions, deps.Config)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/session", authHandler.Session)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.RequireAuth())
		{
			protected.POST("/logout", authHandler.Logout)
		}
	}
}

func setupEventRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	eventHandler := handlers.NewEventHandler(deps.Events, deps.Sessions)

	rg.GET("/home", eventHandler.Home)

	events := rg.Group("/events")
	{
		events.GET("", eventHandler.List)
		events.GET("/featured", eventHandler.Featured)
		events.GET("/categories", eventHandler.Categories)
		events.GET("/search/suggestions", eventHandler.SearchSuggestions)
		events.GET("/:id", eventHandler.Get)

		// Creation through the public catalog endpoint is organizer-only
		protected := events.Group("")
		protected.Use(middleware.RequireRole(session.RoleOrganizer))
		{
			protected.POST("", eventHandler.Create)
			protected.POST("/upload-image", eventHandler.UploadImage)
		}
	}
}

func setupCartRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Carts, deps.Events, deps.Sessions)

	// The cart works for anonymous clients; only checkout requires a login
	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.Get)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.PUT("/items/:eventId", cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:eventId", cartHandler.RemoveItem)
		cartGroup.DELETE("", cartHandler.Clear)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout, deps.Sessions)

	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(middleware.RequireAuth())
	{
		checkoutGroup.POST("", checkoutHandler.Submit)
		checkoutGroup.GET("/state", checkoutHandler.State)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.PDF)

	orders := rg.Group("/orders")
	orders.Use(middleware.RequireAuth())
	{
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.GET("/:id/invoice", orderHandler.Invoice)
	}
}

func setupTicketRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	ticketHandler := handlers.NewTicketHandler(deps.Tickets, deps.Sessions)

	tickets := rg.Group("/tickets")
	tickets.Use(middleware.RequireAuth())
	{
		tickets.GET("", ticketHandler.MyTickets)
		tickets.GET("/:id", ticketHandler.Get)
		tickets.GET("/:id/qr", ticketHandler.QRCode)
		tickets.POST("/:id/transfer", ticketHandler.Transfer)
		tickets.POST("/:id/cancel", ticketHandler.Cancel)
		tickets.POST("/:id/validate", ticketHandler.Validate)
	}
}

func setupProfileRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	profileHandler := handlers.NewProfileHandler(deps.Users, deps.Sessions)

	profile := rg.Group("/profile")
	profile.Use(middleware.RequireAuth())
	{
		profile.GET("", profileHandler.Get)
		profile.PUT("", profileHandler.Update)
		profile.POST("/avatar", profileHandler.UploadAvatar)
		profile.PUT("/password", profileHandler.ChangePassword)
		profile.GET("/favorites", profileHandler.Favorites)
		profile.POST("/favorites/:eventId", profileHandler.AddFavorite)
		profile.DELETE("/favorites/:eventId", profileHandler.RemoveFavorite)
	}
}

func setupOrganizerRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	organizerHandler := handlers.NewOrganizerHandler(deps.Organizers, deps.Sessions)

	org := rg.Group("/organizer")
	org.Use(middleware.RequireRole(session.RoleOrganizer))
	{
		org.GET("/dashboard", organizerHandler.DashboardStats)

		events := org.Group("/events")
		{
			events.GET("", organizerHandler.MyEvents)
			events.POST("", organizerHandler.CreateEvent)
			events.POST("/upload-image", organizerHandler.UploadEventImage)
			events.GET("/:id", organizerHandler.GetEvent)
			events.PUT("/:id", organizerHandler.UpdateEvent)
			events.DELETE("/:id", organizerHandler.DeleteEvent)
			events.POST("/:id/publish", organizerHandler.PublishEvent)
			events.POST("/:id/unpublish", organizerHandler.UnpublishEvent)
			events.GET("/:id/tickets", organizerHandler.EventTickets)
			events.GET("/:id/attendees", organizerHandler.EventAttendees)
		}

		tickets := org.Group("/tickets")
		{
			tickets.GET("", organizerHandler.Tickets)
			tickets.POST("/scan", organizerHandler.ScanTicket)
			tickets.PUT("/:id/cancel", organizerHandler.CancelTicket)
		}

		analytics := org.Group("/analytics")
		{
			analytics.GET("/sales", organizerHandler.SalesData)
			analytics.GET("/revenue", organizerHandler.RevenueAnalytics)
			analytics.GET("/events/:id", organizerHandler.EventAnalytics)
		}
	}
}

func setupPaymentRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	paymentHandler := handlers.NewPaymentHandler(deps.Payments, deps.Sessions)

	payments := rg.Group("/payments")
	payments.Use(middleware.RequireAuth())
	{
		payments.POST("/initiate", paymentHandler.Initiate)
		payments.GET("/history", paymentHandler.History)
		payments.GET("/:id/status", paymentHandler.Status)
	}
}
