package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-backend/models"
	"storefront-backend/services"
)

type ProductController struct {
	productService services.ProductService
	userService    services.UserService
}

func NewProductController(productService services.ProductService, userService services.UserService) *ProductController {
	return &ProductController{productService: productService, userService: userService}
}

// GetProducts returns a filtered, paginated product listing
// GET /api/products
func (pc *ProductController) GetProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		filter.MaxPrice = &v
	}

	page, limit := parsePaginationParams(c)

	result, svcErr := pc.productService.List(c.Request.Context(), filter, page, limit)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFeaturedProducts returns the featured product selection
// GET /api/products/featured
func (pc *ProductController) GetFeaturedProducts(c *gin.Context) {
	products, svcErr := pc.productService.Featured(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetCategories returns the distinct active categories
// GET /api/products/categories
func (pc *ProductController) GetCategories(c *gin.Context) {
	categories, svcErr := pc.productService.Categories(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetBrands returns the distinct active brands
// GET /api/products/brands
func (pc *ProductController) GetBrands(c *gin.Context) {
	brands, svcErr := pc.productService.Brands(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, brands)
}

// GetProductByID returns a single product
// GET /api/products/:id
func (pc *ProductController) GetProductByID(c *gin.Context) {
	product, svcErr := pc.productService.Get(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product (admin only)
// POST /api/products
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.Create(c.Request.Context(), &input)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct updates a product (admin only)
// PUT /api/products/:id
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.Update(c.Request.Context(), c.Param("id"), &input)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateReview adds a customer review to a product
// POST /api/products/:id/reviews
func (pc *ProductController) CreateReview(c *gin.Context) {
	user, svcErr := currentUser(c, pc.userService)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := pc.productService.CreateReview(c.Request.Context(), c.Param("id"), user, &req); svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review added"})
}

// DeleteProduct deactivates a product (admin only)
// DELETE /api/products/:id
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if svcErr := pc.productService.Delete(c.Request.Context(), c.Param("id")); svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}
