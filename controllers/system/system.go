package systemcontroller

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/saludmexfood/saluds-mx-food/cache"
)

// Controller wires the one-shot operational switches from the settings
// screen: pause/resume/stop/run_now act on the sweeper, the clear_* actions
// wipe review queues, decision logs, and server logs.
type Controller struct {
	Sweeper   *Sweeper
	Pause     *cache.PauseState
	ReviewDir string
	LogDir    string
}

func (ctl *Controller) PauseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ctl.Pause.SetPaused(c.Request.Context(), true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func (ctl *Controller) ResumeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ctl.Pause.SetPaused(c.Request.Context(), false); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func (ctl *Controller) StopHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctl.Sweeper.Stop()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func (ctl *Controller) RunNowHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctl.Sweeper.RunNow()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ClearQueuesHandler deletes every file inside *_queue directories.
func (ctl *Controller) ClearQueuesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := os.ReadDir(ctl.ReviewDir)
		if err != nil {
			// Nothing to clear counts as success.
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		for _, entry := range entries {
			if !entry.IsDir() || !strings.HasSuffix(entry.Name(), "_queue") {
				continue
			}
			if err := clearDir(filepath.Join(ctl.ReviewDir, entry.Name())); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ClearApprovalsHandler wipes the decision logs.
func (ctl *Controller) ClearApprovalsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := clearDir(filepath.Join(ctl.ReviewDir, "decisions")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ClearLogsHandler wipes the server log dir.
func (ctl *Controller) ClearLogsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := clearDir(ctl.LogDir); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
