package delivery

import (
	"net/http"

	"github.com/Shoxzn12/level-up-pc/internal/domain"
	"github.com/Shoxzn12/level-up-pc/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CheckoutHandler struct {
	useCase usecase.CheckoutUseCase
	log     *logrus.Logger
}

func NewCheckoutHandler(uc usecase.CheckoutUseCase, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/create_preference", h.CreatePreference)
	router.GET("/mp_whoami", h.WhoAmI)
}

func (h *CheckoutHandler) CreatePreference(c *gin.Context) {
	var req domain.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for create preference: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), domain.CodeValidation)
		return
	}

	res, err := h.useCase.CreatePreference(c.Request.Context(), req)
	if err != nil {
		h.log.Warnf("Failed to create preference for '%s': %v", req.Title, err)
		writeError(c, err)
		return
	}

	h.log.Infof("Preference created: %s", res.ExternalReference)
	c.JSON(http.StatusOK, res)
}

func (h *CheckoutHandler) WhoAmI(c *gin.Context) {
	info, err := h.useCase.WhoAmI(c.Request.Context())
	if err != nil {
		h.log.Warnf("Failed to query payment account: %v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
