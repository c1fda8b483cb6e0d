// File: skiply/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth
	UserAuth     gin.HandlerFunc
	BusinessOnly gin.HandlerFunc
	AdminOnly    gin.HandlerFunc

	Queue   *QueueHandler
	User    *UserHandler
	Storage *StorageHandler
	Health  gin.HandlerFunc
}
