package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"boomiis-api/models"
	"boomiis-api/store"
)

const maxListedCollections = 20

func setOrNot(key string) string {
	if os.Getenv(key) != "" {
		return "Set"
	}
	return "Not Set"
}

// TestDatabase reports backend and database status
func (h *Handler) TestDatabase(c *gin.Context) {
	resp := gin.H{
		"backend":           "Running",
		"database":          "Not Available",
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	if h.db != nil {
		resp["database"] = "Available"
		resp["database_name"] = h.cfg.DB.Name

		tables, err := store.Tables(h.db)
		if err == nil {
			err = store.Ping(c.Request.Context(), h.db)
		}
		if err != nil {
			resp["database"] = "Error: " + truncate(err.Error(), processorMessageLimit)
		} else {
			if len(tables) > maxListedCollections {
				tables = tables[:maxListedCollections]
			}
			resp["collections"] = tables
			resp["database"] = "Connected & Working"
			resp["connection_status"] = "Connected"
		}
	}

	resp["database_url"] = setOrNot("DATABASE_URL")
	resp["database_name_env"] = setOrNot("DATABASE_NAME")

	c.JSON(http.StatusOK, resp)
}

// Schema lists the collection names
func (h *Handler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"collections": models.CollectionNames()})
}

// Health answers 200 while the database is reachable
func (h *Handler) Health(c *gin.Context) {
	if err := store.Ping(c.Request.Context(), h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
