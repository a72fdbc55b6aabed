// Package handlers implements the HTTP endpoints of the restaurant site.
package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"boomiis-api/config"
	"boomiis-api/middleware"
	"boomiis-api/payments"
)

const processorMessageLimit = 120

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:[-_][A-Za-z0-9]+)*$`)

var registerOnce sync.Once

// Handler serves every endpoint. Payments is nil when no processor is configured.
type Handler struct {
	db       *gorm.DB
	cfg      *config.Config
	auth     *middleware.Authenticator
	payments payments.Provider
	slots    *slotLocks
}

// New wires a Handler. Pass a nil provider to disable payment intents.
func New(db *gorm.DB, cfg *config.Config, auth *middleware.Authenticator, provider payments.Provider) *Handler {
	registerValidators()

	return &Handler{
		db:       db,
		cfg:      cfg,
		auth:     auth,
		payments: provider,
		slots:    newSlotLocks(),
	}
}

// registerValidators reports json field names and adds the slug rule to gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
}

// bindJSON decodes the request body into obj. Validation failures answer 422
// with the failing fields, anything else 400.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, gin.H{"field": fe.Field(), "rule": fe.Tag()})
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": fields})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
	return false
}

func unprocessable(c *gin.Context, field, rule, msg string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  msg,
		"fields": []gin.H{{"field": field, "rule": rule}},
	})
}

// internalError logs err and answers 500 with a generic message.
func internalError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("route", c.FullPath()).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
