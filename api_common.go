package main

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
	"bitbucket.org/mmdatafocus/auditdesk_backend/models"
	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const importErrorMessage = "Error importing file. Please verify the file format and try again."

// respondBindError shapes validator failures field-by-field; anything else
// (malformed JSON) gets the generic message.
func respondBindError(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(verr)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

// openWorkbookUpload reads the multipart "file" field into an excelize
// workbook. Only .xlsx/.xls uploads are accepted.
func openWorkbookUpload(c *gin.Context) (*excelize.File, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return excelize.OpenReader(src)
}

// writeWorkbookResponse streams a workbook as a download attachment.
func writeWorkbookResponse(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		config.LogError(config.GetLogger(), "api", "writeWorkbookResponse", filename, nil, err)
	}
}

// dateFromQuery reads the selected date; absent or unparseable values fall
// back to today. The chart counter uses this directly.
func dateFromQuery(c *gin.Context) time.Time {
	if date := c.Query("date"); date != "" {
		if d, ok := models.ParseDateValue(date); ok {
			return d
		}
	}
	return utils.TruncateToDay(time.Now())
}

// referenceDateFromQuery resolves the detail-list reference date: a custom
// range end wins over the selected date.
func referenceDateFromQuery(c *gin.Context) time.Time {
	if rangeEnd := c.Query("range_end"); rangeEnd != "" {
		if d, ok := models.ParseDateValue(rangeEnd); ok {
			return d
		}
	}
	return dateFromQuery(c)
}

func tabFromQuery(c *gin.Context) (models.Tab, bool) {
	raw := c.Query("tab")
	if raw == "" {
		return models.TabTally, true
	}
	tab, err := models.ParseTab(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab must be one of TALLY, ERP, AUDIT"})
		return "", false
	}
	return tab, true
}

// withImportLock serializes imports per collection with a best-effort
// Redis lock when the feature flag is on. Imports proceed without the lock
// if Redis is unavailable; the replace itself is already atomic in-process.
func withImportLock(c *gin.Context, key string, fn func() error) error {
	if !config.ImportLockEnabled() {
		return fn()
	}

	locker := config.GetRedisLock()
	if locker == nil {
		return fn()
	}

	logger := config.GetLogger()
	lock, err := locker.Obtain(c.Request.Context(), "import:"+key, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		c.JSON(http.StatusConflict, gin.H{"error": "another import is in progress"})
		return nil
	}
	if err != nil {
		logger.WithFields(logrus.Fields{
			"field": "withImportLock",
			"key":   key,
		}).Warn("error obtaining import lock; proceeding without it: " + err.Error())
		return fn()
	}
	defer func() {
		if releaseErr := lock.Release(c.Request.Context()); releaseErr != nil {
			logger.WithFields(logrus.Fields{
				"field": "withImportLock",
				"key":   key,
			}).Warn("failed to release import lock: " + releaseErr.Error())
		}
	}()
	return fn()
}
