package main

import (
	"errors"
	"net/http"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
	"bitbucket.org/mmdatafocus/auditdesk_backend/models"
	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"bitbucket.org/mmdatafocus/auditdesk_backend/workflow"
	"github.com/gin-gonic/gin"
)

func listAuditRecordsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ListAuditRecords(c.Request.Context()))
	}
}

func getAuditRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := models.GetAuditRecord(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func createAuditRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewAuditRecord
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		rec := models.CreateAuditRecord(c.Request.Context(), &input)
		c.JSON(http.StatusCreated, rec)
	}
}

func updateAuditRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewAuditRecord
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		rec, err := models.UpdateAuditRecord(c.Request.Context(), c.Param("id"), &input)
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

func deleteAuditRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := models.DeleteAuditRecord(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func yearwiseSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		records := models.ListAuditRecords(c.Request.Context())
		c.JSON(http.StatusOK, models.CalculateYearwiseSummary(records))
	}
}

func importAuditRecordsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		f, err := openWorkbookUpload(c)
		if err != nil {
			config.LogError(logger, "api", "importAuditRecordsHandler", "open upload", nil, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": importErrorMessage})
			return
		}
		defer f.Close()

		err = withImportLock(c, models.StoreKeyAuditRecords, func() error {
			count, err := models.ImportAuditRecords(c.Request.Context(), f)
			if err != nil {
				return err
			}
			c.JSON(http.StatusOK, gin.H{"imported": count})
			return nil
		})
		if err != nil {
			config.LogError(logger, "api", "importAuditRecordsHandler", "import workbook", nil, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": importErrorMessage})
		}
	}
}

func exportAuditRecordsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, filename, err := models.ExportAuditRecords(c.Request.Context())
		if err != nil {
			config.LogError(config.GetLogger(), "api", "exportAuditRecordsHandler", "export workbook", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		writeWorkbookResponse(c, f, filename)
	}
}

func retryRemindersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requeued, err := workflow.RetryFailedReminders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"requeued": requeued})
	}
}
