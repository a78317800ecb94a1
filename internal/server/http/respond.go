package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// respond writes XML when the client prefers application/xml and JSON
// otherwise, including when Accept names neither.
func respond(c *gin.Context, status int, jsonData, xmlData any) {
	switch c.NegotiateFormat(binding.MIMEJSON, binding.MIMEXML, binding.MIMEXML2) {
	case binding.MIMEXML, binding.MIMEXML2:
		c.XML(status, xmlData)
	default:
		c.JSON(status, jsonData)
	}
}
