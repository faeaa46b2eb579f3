package httpapi

import (
	"net/http"
	"time"

	"campaignhub/pkg/errutil"
	"campaignhub/services/campaign"

	"github.com/gin-gonic/gin"
)

type createCampaignRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	RewardPoints   string `json:"reward_points"`
	Deadline       string `json:"deadline"`
	SubmissionType string `json:"submission_type"`
}

type campaignResponse struct {
	*campaign.Campaign
	Status campaign.Status `json:"status"`
}

func (h *Handler) listCampaigns(c *gin.Context) {
	campaigns, err := h.campaign.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	now := time.Now()
	out := make([]campaignResponse, 0, len(campaigns))
	for _, cp := range campaigns {
		out = append(out, campaignResponse{Campaign: cp, Status: cp.Status(now)})
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": out})
}

func (h *Handler) getCampaign(c *gin.Context) {
	cp, err := h.campaign.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, campaignResponse{Campaign: cp, Status: cp.Status(time.Now())})
}

func (h *Handler) createCampaign(c *gin.Context) {
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errutil.BadRequest("invalid request body", errutil.WithErr(err)))
		return
	}

	user := currentUser(c)
	cp, err := h.campaign.Create(c.Request.Context(), campaign.CreateParams{
		Brand:          user.DisplayName,
		Title:          req.Title,
		Description:    req.Description,
		RewardPoints:   req.RewardPoints,
		Deadline:       req.Deadline,
		SubmissionType: req.SubmissionType,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, campaignResponse{Campaign: cp, Status: campaign.StatusActive})
}

func (h *Handler) campaignSummary(c *gin.Context) {
	user := currentUser(c)
	summary, err := h.campaign.Summary(c.Request.Context(), user.DisplayName, time.Now())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
