package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"productapi/internal/config"
	"productapi/internal/domain"
	"productapi/internal/metrics"
)

// Options задаёт окружение сервера
type Options struct {
	Security config.SecurityConfig
	Logger   *slog.Logger
	// Metrics is optional; MetricsPath is served only when both are set.
	Metrics     *metrics.Metrics
	MetricsPath string
	// Now overrides the clock used for error timestamps.
	Now func() time.Time
}

type Server struct {
	engine   *gin.Engine
	products domain.ProductService
	errors   *ErrorMapper
	log      *slog.Logger
	metrics  *metrics.Metrics
}

func NewServer(products domain.ProductService, opts Options) *Server {
	registerValidators()
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		engine:   gin.New(),
		products: products,
		errors:   NewErrorMapper(log, opts.Metrics, opts.Now),
		log:      log,
		metrics:  opts.Metrics,
	}
	s.engine.Use(s.requestContext(), s.observe(), s.recovery(), s.apiKeyAuth(opts.Security))
	s.registerRoutes(opts)
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes(opts Options) {
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.Metrics != nil && opts.MetricsPath != "" {
		s.engine.GET(opts.MetricsPath, gin.WrapH(opts.Metrics.Handler()))
	}

	products := s.engine.Group("/api/products")
	{
		products.POST("", s.createProduct)
		products.GET("", s.listProducts)
		products.GET("/:id", s.getProduct)
		products.PUT("/:id", s.updateProduct)
		products.DELETE("/:id", s.deleteProduct)
	}
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body productRequest true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, bindError(err))
		return
	}
	p, err := s.products.CreateProduct(c.Request.Context(), req.toDomain(0))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	p, err := s.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary List products
// @Tags products
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.Product
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products [get]
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.products.ListProducts(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Replace product
// @Description The path id wins over any id in the body; every field is replaced.
// @Tags products
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Param input body productRequest true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, bindError(err))
		return
	}
	p, err := s.products.UpdateProduct(c.Request.Context(), req.toDomain(id))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags products
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if err := s.products.DeleteProduct(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fieldError("id", "must be a positive integer")
	}
	return id, nil
}
