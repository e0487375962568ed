package routes

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/internal/api/handlers"
	"Lost-Found-Registry/internal/middleware"
	"Lost-Found-Registry/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App          *fiber.App
	ItemHandler  handlers.ItemHandler
	ClaimHandler handlers.ClaimHandler
	AdminHandler handlers.AdminHandler
	Middleware   middleware.Middleware
	JWTService   jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Items()
	c.Admin()
}

func (c *Config) adminOnly() []fiber.Handler {
	return []fiber.Handler{
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.OnlyAllow(domain.RoleAdmin),
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Items() {
	items := c.App.Group("/api/v1/items")
	guard := c.adminOnly()

	// public
	items.Post("", c.ItemHandler.CreateItem)
	items.Get("", c.ItemHandler.GetItems)
	items.Get("/search", c.ItemHandler.SearchItems)
	items.Get("/filter", c.ItemHandler.FilterItems)
	items.Get("/:id", c.ItemHandler.GetItem)

	// admin
	items.Put("/:id", append(guard, c.ItemHandler.UpdateItem)...)
	items.Delete("/:id", append(guard, c.ItemHandler.DeleteItem)...)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin")
	admin.Post("/login", c.AdminHandler.Login)

	guard := c.adminOnly()
	{
		admin.Post("/send-verification", append(guard, c.ClaimHandler.SendVerification)...)
		admin.Post("/verify-claim", append(guard, c.ClaimHandler.VerifyClaim)...)
		admin.Get("/items/:id", append(guard, c.ItemHandler.GetAdminItem)...)
		admin.Post("/items/:id/return", append(guard, c.ItemHandler.MarkReturned)...)
	}
}
