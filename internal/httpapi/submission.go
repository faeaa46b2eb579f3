package httpapi

import (
	"net/http"

	"campaignhub/pkg/errutil"
	"campaignhub/services/identity"
	"campaignhub/services/submission"

	"github.com/gin-gonic/gin"
)

type createSubmissionRequest struct {
	Content  string `json:"content"`
	FileName string `json:"file_name"`
}

type reviewSubmissionRequest struct {
	Approve  bool   `json:"approve"`
	Feedback string `json:"feedback"`
}

// listSubmissions is role-scoped: participants see their own entries, brands
// see entries against their campaigns. The q and status query params filter
// the result in memory.
func (h *Handler) listSubmissions(c *gin.Context) {
	user := currentUser(c)

	var (
		subs []*submission.Submission
		err  error
	)
	switch user.Role {
	case identity.RoleParticipant:
		subs, err = h.submission.ListByAuthor(c.Request.Context(), user.WalletAddress)
	case identity.RoleBrand:
		subs, err = h.submission.ListByBrand(c.Request.Context(), user.DisplayName)
	default:
		c.Error(errutil.Forbidden("unknown role"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	var status submission.Status
	if raw := c.Query("status"); raw != "" {
		status, err = submission.ParseStatus(raw)
		if err != nil {
			c.Error(err)
			return
		}
	}
	subs = submission.Filter(subs, c.Query("q"), status)

	c.JSON(http.StatusOK, gin.H{
		"submissions": subs,
		"counts":      submission.CountByStatus(subs),
	})
}

func (h *Handler) createSubmission(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errutil.BadRequest("invalid request body", errutil.WithErr(err)))
		return
	}

	cp, err := h.campaign.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	user := currentUser(c)
	sub, err := h.submission.Submit(c.Request.Context(), submission.SubmitParams{
		Campaign:     cp,
		AuthorWallet: user.WalletAddress,
		AuthorName:   user.DisplayName,
		Content:      req.Content,
		FileName:     req.FileName,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) reviewSubmission(c *gin.Context) {
	var req reviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errutil.BadRequest("invalid request body", errutil.WithErr(err)))
		return
	}

	sub, err := h.submission.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	user := currentUser(c)
	if sub.Brand != user.DisplayName {
		c.Error(errutil.Forbidden("submission belongs to another brand"))
		return
	}

	reviewed, err := h.submission.Review(c.Request.Context(), submission.ReviewParams{
		SubmissionID: sub.ID,
		Approve:      req.Approve,
		Feedback:     req.Feedback,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, reviewed)
}
