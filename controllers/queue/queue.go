package queuecontroller

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type DecisionRequest struct {
	Queue     string `json:"queue"`
	Agent     string `json:"agent"`
	File      string `json:"file" binding:"required"`
	Decision  string `json:"decision" binding:"required"`
	Timestamp string `json:"timestamp"`
}

// sanitizePathComponent strips traversal characters from user-supplied names.
func sanitizePathComponent(s string) string {
	s = strings.ReplaceAll(s, "..", "")
	s = strings.ReplaceAll(s, "/", "")
	return strings.ReplaceAll(s, "\\", "")
}

// ListQueuesHandler lists *_queue directories under the review dir, each with
// its JSON files newest first.
func ListQueuesHandler(reviewDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		queues := map[string][]string{}

		entries, err := os.ReadDir(reviewDir)
		if err == nil {
			for _, entry := range entries {
				if !entry.IsDir() || !strings.HasSuffix(entry.Name(), "_queue") {
					continue
				}
				files, globErr := filepath.Glob(filepath.Join(reviewDir, entry.Name(), "*.json"))
				if globErr != nil {
					continue
				}
				sort.Slice(files, func(i, j int) bool {
					fi, errI := os.Stat(files[i])
					fj, errJ := os.Stat(files[j])
					if errI != nil || errJ != nil {
						return files[i] < files[j]
					}
					return fi.ModTime().After(fj.ModTime())
				})
				names := []string{}
				for _, f := range files {
					names = append(names, filepath.Base(f))
				}
				queues[entry.Name()] = names
			}
		}

		c.JSON(http.StatusOK, gin.H{"queues": queues})
	}
}

// GetQueueFileHandler returns the JSON payload of one queue file.
func GetQueueFileHandler(reviewDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		queue := sanitizePathComponent(c.Query("queue"))
		file := sanitizePathComponent(c.Query("file"))

		path := filepath.Join(reviewDir, queue, file)
		data, err := os.ReadFile(path)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
			return
		}

		var payload interface{}
		if err := json.Unmarshal(data, &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		c.JSON(http.StatusOK, payload)
	}
}

// PostDecisionHandler appends a review decision to the day's JSONL log.
func PostDecisionHandler(reviewDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DecisionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}

		decisionsDir := filepath.Join(reviewDir, "decisions")
		if err := os.MkdirAll(decisionsDir, 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to create decisions dir"})
			return
		}

		path := filepath.Join(decisionsDir, time.Now().UTC().Format("20060102")+".jsonl")
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to open decision log"})
			return
		}
		defer f.Close()

		record, _ := json.Marshal(req)
		if _, err := f.Write(append(record, '\n')); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to write decision"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
