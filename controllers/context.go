package controllers

import (
	"task-review-api/services"

	"github.com/gin-gonic/gin"
)

// currentIdentity rebuilds the acting principal from the values the auth
// middleware stored on the context.
func currentIdentity(c *gin.Context) services.Identity {
	identity := services.Identity{}
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(int); ok {
			identity.UserID = id
		}
	}
	if v, ok := c.Get("email"); ok {
		if email, ok := v.(string); ok {
			identity.Email = email
		}
	}
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			identity.Role = role
		}
	}
	return identity
}
