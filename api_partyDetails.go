package main

import (
	"errors"
	"net/http"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
	"bitbucket.org/mmdatafocus/auditdesk_backend/models"
	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"github.com/gin-gonic/gin"
)

func listPartyDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ListPartyDetails(c.Request.Context()))
	}
}

func getPartyDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := models.GetPartyDetails(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func createPartyDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPartyDetails
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		rec, err := models.CreatePartyDetails(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

func updatePartyDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPartyDetails
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		rec, err := models.UpdatePartyDetails(c.Request.Context(), c.Param("id"), &input)
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

func deletePartyDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := models.DeletePartyDetails(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func importPartyDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		f, err := openWorkbookUpload(c)
		if err != nil {
			config.LogError(logger, "api", "importPartyDetailsHandler", "open upload", nil, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": importErrorMessage})
			return
		}
		defer f.Close()

		err = withImportLock(c, models.StoreKeyPartyDetails, func() error {
			count, err := models.ImportPartyDetails(c.Request.Context(), f)
			if err != nil {
				return err
			}
			c.JSON(http.StatusOK, gin.H{"imported": count})
			return nil
		})
		if err != nil {
			config.LogError(logger, "api", "importPartyDetailsHandler", "import workbook", nil, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": importErrorMessage})
		}
	}
}

func exportPartyDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, filename, err := models.ExportPartyDetails(c.Request.Context())
		if err != nil {
			config.LogError(config.GetLogger(), "api", "exportPartyDetailsHandler", "export workbook", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		writeWorkbookResponse(c, f, filename)
	}
}
