package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/billsplit/pkg/utils"
	"github.com/GlebRadaev/billsplit/pkg/validate"
)

type ContextKey string

const (
	ViewerKey    ContextKey = "viewer"
	SenderHeader            = "Sender-Address"
)

// ViewerMiddleware puts the viewer address into the request context. The Sender-Address header
// wins over the connected wallet; a malformed header is rejected.
func ViewerMiddleware(defaultViewer func() string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := strings.TrimSpace(r.Header.Get(SenderHeader))
			if viewer != "" && !validate.IsAddress(viewer) {
				utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid Sender-Address header")
				return
			}
			if viewer == "" && defaultViewer != nil {
				viewer = defaultViewer()
			}

			ctx := context.WithValue(r.Context(), ViewerKey, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Viewer(ctx context.Context) string {
	v, _ := ctx.Value(ViewerKey).(string)
	return v
}
