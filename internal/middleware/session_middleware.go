package middleware

import (
	"context"
	"net/http"
	"strings"

	"ivolexMarket/business/session"
	"ivolexMarket/domain"
	"ivolexMarket/pkg/logger"

	jsonres "ivolexMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "ivx_session"
)

// SessionResumer reloads or mints the browsing session for a request.
type SessionResumer interface {
	Resume(ctx context.Context, sessionID string, profile session.DeviceProfile) (domain.SessionContext, error)
}

// SessionMiddleware attaches a SessionContext to every request. The session
// id comes from the X-Session-ID header or the session cookie; a stale or
// absent id yields a freshly minted session, echoed back on the response.
func SessionMiddleware(sessions SessionResumer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			sessionID := req.Header.Get(sessionHeader)
			if sessionID == "" {
				if cookie, err := c.Cookie(sessionCookie); err == nil {
					sessionID = cookie.Value
				}
			}

			profile := session.DeviceProfile{
				Device:   session.ClassifyDevice(req.UserAgent()),
				Platform: platformFromAgent(req.UserAgent()),
				Locale:   localeFromHeader(req.Header.Get("Accept-Language")),
			}

			sc, err := sessions.Resume(req.Context(), sessionID, profile)
			if err != nil {
				logger.Error("session_resume_failed", "error", err)
				return c.JSON(http.StatusInternalServerError, jsonres.Error(
					"INTERNAL", "Failed to establish session", nil,
				))
			}

			c.Set("session_id", sc.SessionID)
			c.Set("session", sc)

			c.Response().Header().Set(sessionHeader, sc.SessionID)
			c.SetCookie(&http.Cookie{
				Name:     sessionCookie,
				Value:    sc.SessionID,
				Path:     "/",
				HttpOnly: true,
			})

			return next(c)
		}
	}
}

func platformFromAgent(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "android"):
		return "android"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "mac os"):
		return "apple"
	case strings.Contains(ua, "windows"):
		return "windows"
	case strings.Contains(ua, "linux"):
		return "linux"
	default:
		return "unknown"
	}
}

func localeFromHeader(acceptLanguage string) string {
	if acceptLanguage == "" {
		return ""
	}

	first := strings.Split(acceptLanguage, ",")[0]
	return strings.TrimSpace(strings.Split(first, ";")[0])
}
