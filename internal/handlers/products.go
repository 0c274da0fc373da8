// internal/handlers/products.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eshopx/eshop-backend/internal/services"
	"github.com/eshopx/eshop-backend/internal/utils"
)

const maxGalleryImages = 10

type ProductHandler struct {
	products *services.ProductService
	storage  *services.StorageService
}

func NewProductHandler(products *services.ProductService, storage *services.StorageService) *ProductHandler {
	return &ProductHandler{products: products, storage: storage}
}

// GET /products?categories=a,b
func (h *ProductHandler) List(c *gin.Context) {
	var categoryIDs []string
	if raw := c.Query("categories"); raw != "" {
		categoryIDs = strings.Split(raw, ",")
	}

	products, err := h.products.List(c.Request.Context(), categoryIDs)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid category ID")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	case len(products) == 0:
		utils.NotFoundResponse(c, "No products found")
	default:
		utils.SuccessResponse(c, products)
	}
}

// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid product ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Product not found")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.SuccessResponse(c, product)
	}
}

// POST /products (multipart form, image required)
func (h *ProductHandler) Create(c *gin.Context) {
	req, err := productRequestFromForm(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "No image file provided")
		return
	}

	filename, err := h.storage.SaveImage(header)
	if err != nil {
		if errors.Is(err, services.ErrInvalidImageType) || errors.Is(err, services.ErrFileTooLarge) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	imageURL := h.storage.ImageURL(requestScheme(c), c.Request.Host, filename)

	product, err := h.products.Create(c.Request.Context(), req, imageURL)
	switch {
	case errors.Is(err, services.ErrInvalidCategory):
		utils.NotFoundResponse(c, "Invalid category")
	case err != nil:
		utils.InternalErrorResponse(c, "Internal server error")
	default:
		utils.SuccessResponse(c, product)
	}
}

// PUT /products/:id (multipart form, image optional)
func (h *ProductHandler) Update(c *gin.Context) {
	// Reject structurally invalid ids before touching the store.
	if _, err := primitive.ObjectIDFromHex(c.Param("id")); err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	req, err := productRequestFromForm(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	var imageURL string
	if header, err := c.FormFile("image"); err == nil {
		filename, err := h.storage.SaveImage(header)
		if err != nil {
			if errors.Is(err, services.ErrInvalidImageType) || errors.Is(err, services.ErrFileTooLarge) {
				utils.BadRequestResponse(c, err.Error())
				return
			}
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		imageURL = h.storage.ImageURL(requestScheme(c), c.Request.Host, filename)
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), req, imageURL)
	switch {
	case errors.Is(err, services.ErrInvalidCategory):
		utils.NotFoundResponse(c, "Invalid category")
	case errors.Is(err, services.ErrNotFound):
		utils.BadRequestResponse(c, "Invalid product")
	case err != nil:
		utils.InternalErrorResponse(c, "The product cannot be updated")
	default:
		utils.SuccessResponse(c, product)
	}
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	err := h.products.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid product ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Product not found")
	case err != nil:
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.MessageResponse(c, "The product was removed")
	}
}

// GET /products/get/count
func (h *ProductHandler) Count(c *gin.Context) {
	count, err := h.products.Count(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Internal server error")
		return
	}
	if count == 0 {
		utils.NotFoundResponse(c, "No products found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "productCount": count})
}

// GET /products/get/featured/:count
func (h *ProductHandler) Featured(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.Param("count"), 10, 64)

	products, err := h.products.Featured(c.Request.Context(), limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	if len(products) == 0 {
		utils.NotFoundResponse(c, "No featured products found")
		return
	}
	utils.SuccessResponse(c, products)
}

// PUT /products/gallery-images/:id (multipart form, up to 10 images)
func (h *ProductHandler) UpdateGallery(c *gin.Context) {
	if _, err := primitive.ObjectIDFromHex(c.Param("id")); err != nil {
		utils.BadRequestResponse(c, "Invalid Product Id")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid form data")
		return
	}

	files := form.File["images"]
	if len(files) > maxGalleryImages {
		files = files[:maxGalleryImages]
	}

	imageURLs := []string{}
	for _, header := range files {
		filename, err := h.storage.SaveImage(header)
		if err != nil {
			if errors.Is(err, services.ErrInvalidImageType) || errors.Is(err, services.ErrFileTooLarge) {
				utils.BadRequestResponse(c, err.Error())
				return
			}
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		imageURLs = append(imageURLs, h.storage.ImageURL(requestScheme(c), c.Request.Host, filename))
	}

	product, err := h.products.UpdateGallery(c.Request.Context(), c.Param("id"), imageURLs)
	if err != nil {
		utils.InternalErrorResponse(c, "The gallery cannot be updated")
		return
	}
	utils.SuccessResponse(c, product)
}

func productRequestFromForm(c *gin.Context) (*services.ProductRequest, error) {
	price, err := strconv.ParseFloat(c.DefaultPostForm("price", "0"), 64)
	if err != nil {
		return nil, errors.New("invalid price")
	}
	countInStock, err := strconv.Atoi(c.DefaultPostForm("countInStock", "0"))
	if err != nil {
		return nil, errors.New("invalid countInStock")
	}
	rating, err := strconv.ParseFloat(c.DefaultPostForm("rating", "0"), 64)
	if err != nil {
		return nil, errors.New("invalid rating")
	}
	numReviews, err := strconv.Atoi(c.DefaultPostForm("numReviews", "0"))
	if err != nil {
		return nil, errors.New("invalid numReviews")
	}
	isFeatured, _ := strconv.ParseBool(c.DefaultPostForm("isFeatured", "false"))

	req := &services.ProductRequest{
		Name:            c.PostForm("name"),
		Description:     c.PostForm("description"),
		RichDescription: c.PostForm("richDescription"),
		Brand:           c.PostForm("brand"),
		Price:           price,
		Category:        c.PostForm("category"),
		CountInStock:    countInStock,
		Rating:          rating,
		NumReviews:      numReviews,
		IsFeatured:      isFeatured,
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, errors.New("missing required product fields")
	}
	return req, nil
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
