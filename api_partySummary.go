package main

import (
	"errors"
	"net/http"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
	"bitbucket.org/mmdatafocus/auditdesk_backend/models"
	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"github.com/gin-gonic/gin"
)

func listPartySummariesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ListPartySummaries(c.Request.Context()))
	}
}

func getPartySummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := models.GetPartySummary(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func createPartySummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPartySummary
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		rec := models.CreatePartySummary(c.Request.Context(), &input)
		c.JSON(http.StatusCreated, rec)
	}
}

func updatePartySummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPartySummary
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		rec, err := models.UpdatePartySummary(c.Request.Context(), c.Param("id"), &input)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func deletePartySummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := models.DeletePartySummary(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func partySummaryChartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tab, ok := tabFromQuery(c)
		if !ok {
			return
		}
		reference := dateFromQuery(c)
		parties := models.ListPartySummaries(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"tab":            tab,
			"reference_date": reference.Format(models.DateLayout),
			"counts":         models.SummarizeParties(parties, tab, reference),
		})
	}
}

func partySummaryStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tab, ok := tabFromQuery(c)
		if !ok {
			return
		}
		mode := c.DefaultQuery("mode", "DONE")
		var done bool
		switch mode {
		case "DONE", "done":
			done = true
		case "PENDING", "pending":
			done = false
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be DONE or PENDING"})
			return
		}

		reference := referenceDateFromQuery(c)
		parties := models.ListPartySummaries(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"tab":            tab,
			"reference_date": reference.Format(models.DateLayout),
			"parties":        models.FilterParties(parties, tab, reference, done),
		})
	}
}

func importPartySummariesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		f, err := openWorkbookUpload(c)
		if err != nil {
			config.LogError(logger, "api", "importPartySummariesHandler", "open upload", nil, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": importErrorMessage})
			return
		}
		defer f.Close()

		err = withImportLock(c, models.StoreKeyPartySummaries, func() error {
			count, err := models.ImportPartySummaries(c.Request.Context(), f)
			if err != nil {
				return err
			}
			c.JSON(http.StatusOK, gin.H{"imported": count})
			return nil
		})
		if err != nil {
			config.LogError(logger, "api", "importPartySummariesHandler", "import workbook", nil, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": importErrorMessage})
		}
	}
}

func exportPartySummariesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, filename, err := models.ExportPartySummaries(c.Request.Context())
		if err != nil {
			config.LogError(config.GetLogger(), "api", "exportPartySummariesHandler", "export workbook", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		writeWorkbookResponse(c, f, filename)
	}
}

type fetchEmailsRequest struct {
	PartyNames []string `json:"party_names"`
}

func fetchPartyEmailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fetchEmailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		emails := models.FetchPartyEmails(c.Request.Context(), req.PartyNames)
		c.JSON(http.StatusOK, gin.H{"emails": emails})
	}
}

type queueMessageRequest struct {
	Message  string   `json:"message"`
	PartyIds []string `json:"party_ids"`
}

func queuePartyMessageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req queueMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if len(req.PartyIds) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "party_ids is required"})
			return
		}

		queued, skipped, err := models.QueuePartyReminders(c.Request.Context(), req.Message, req.PartyIds)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"queued":         queued,
			"skipped":        skipped,
			"correlation_id": cid,
		})
	}
}
