// controller/webhook_controller.go
package controller

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/nmhung1294/INT3505E-02-demo/util"
)

// WebhookController manages the set of endpoints event notifications are
// delivered to.
type WebhookController struct {
	notification *util.NotificationService
}

func NewWebhookController(notification *util.NotificationService) *WebhookController {
	return &WebhookController{notification: notification}
}

func (ctrl *WebhookController) RegisterRoutes(api *gin.RouterGroup) {
	webhooks := api.Group("/webhooks")
	webhooks.GET("", ctrl.ListWebhooks)
	webhooks.POST("", ctrl.RegisterWebhook)
	webhooks.DELETE("", ctrl.UnregisterWebhook)
}

type webhookRequest struct {
	URL string `json:"url" binding:"required"`
}

// ListWebhooks handles GET /api/webhooks
func (ctrl *WebhookController) ListWebhooks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"webhooks": ctrl.notification.WebhookURLs()})
}

// RegisterWebhook handles POST /api/webhooks
func (ctrl *WebhookController) RegisterWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid webhook payload", err)
		return
	}
	parsed, err := url.ParseRequestURI(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		util.RespondWithError(c, http.StatusBadRequest, "Webhook URL must be an absolute http(s) URL", err)
		return
	}

	ctrl.notification.AddWebhookURL(req.URL)
	c.JSON(http.StatusCreated, gin.H{"message": "Webhook registered", "url": req.URL})
}

// UnregisterWebhook handles DELETE /api/webhooks
func (ctrl *WebhookController) UnregisterWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid webhook payload", err)
		return
	}
	ctrl.notification.RemoveWebhookURL(req.URL)
	c.JSON(http.StatusOK, gin.H{"message": "Webhook removed"})
}
