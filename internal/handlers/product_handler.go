package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/middleware"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog and reviews.
type ProductHandler struct {
	productService *services.ProductService
	credentials    *services.CredentialService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, credentials *services.CredentialService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		credentials:    credentials,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Listing
// and retrieval are public; mutations require an admin token and review
// submission any authenticated user.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	auth := middleware.AuthRequired(h.credentials)
	productRoutes.Post("/:id/reviews", auth, h.HandleAddReview)

	admin := middleware.AdminRequired()
	productRoutes.Post("/", auth, admin, h.HandleCreateProduct)
	productRoutes.Put("/:id", auth, admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, admin, h.HandleDeleteProduct)
}

// HandleGetProducts lists products, filtered by the optional search query.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetProducts(c.Query("search"))
	if err != nil {
		log.Printf("Error getting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product with its reviews.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.productService.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}
	return c.JSON(product)
}

// CreateProductRequest is the allow-list of fields accepted when creating a
// product.
type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Image        string  `json:"image" validate:"omitempty,max=500"`
	Brand        string  `json:"brand" validate:"omitempty,max=100"`
	Category     string  `json:"category" validate:"omitempty,max=100"`
	Price        float64 `json:"price" validate:"gte=0"`
	CountInStock int     `json:"count_in_stock" validate:"gte=0"`
}

// HandleCreateProduct creates a new catalog product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product := models.Product{
		Name:         req.Name,
		Image:        req.Image,
		Brand:        req.Brand,
		Category:     req.Category,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	}
	if err := h.productService.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update and returns the post-update
// product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	var update services.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(update); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.productService.UpdateProduct(productID, update)
	if err != nil {
		log.Printf("Error updating product %s: %v", productID, err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
		})
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product and confirms with a message body.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.productService.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted",
	})
}

// AddReviewRequest is the body of a review submission.
type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// HandleAddReview appends a review to a product and returns the updated
// product with recomputed aggregates.
func (h *ProductHandler) HandleAddReview(c *fiber.Ctx) error {
	productID := c.Params("id")
	userID, _ := c.Locals("user_id").(string)

	var req AddReviewRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing review body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.productService.AddReview(productID, userID, req.Rating, req.Comment)
	if err != nil {
		log.Printf("Error adding review to product %s: %v", productID, err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add review",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}
