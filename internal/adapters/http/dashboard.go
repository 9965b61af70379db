package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/theRoadz/farcaster-neynar/internal/application"
	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"thousands": thousands,
}).ParseFS(templateFS, "templates/dashboard.html"))

type dashboardPage struct {
	SearchType string
	Query      string
	Error      string
	View       *application.DashboardView
	Chains     []chainRow
}

type chainRow struct {
	Name  string
	Color string
	Count uint64
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := dashboardPage{SearchType: "username"}
	query := application.UserQuery{}
	switch {
	case strings.TrimSpace(q.Get("fid")) != "":
		page.SearchType = "fid"
		page.Query = strings.TrimSpace(q.Get("fid"))
		query.FID = page.Query
	case strings.TrimSpace(q.Get("username")) != "":
		page.Query = strings.TrimSpace(q.Get("username"))
		query.Username = page.Query
	case q.Get("type") == "fid":
		page.SearchType = "fid"
	}

	status := http.StatusOK
	if page.Query != "" {
		view, err := h.service.Dashboard(r.Context(), query)
		if err != nil {
			var code string
			status, code, page.Error = mapDomainError(err, "failed to fetch user data")
			h.logger.InfoContext(r.Context(), "dashboard lookup failed",
				"module", "http.dashboard",
				"layer", "adapter",
				"operation", "dashboard",
				"outcome", code,
				"request_id", requestIDFromContext(r.Context()),
			)
		} else {
			page.View = &view
			page.Chains = chainRows(view.Onchain)
		}
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.logger.ErrorContext(r.Context(), "render dashboard failed",
			"module", "http.dashboard",
			"layer", "adapter",
			"operation", "render",
			"outcome", "failure",
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error", requestIDFromContext(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// chainRows keeps the dashboard's display order. A missing lookup renders as
// zeros, like a lookup where every chain failed.
func chainRows(a *domain.ChainActivity) []chainRow {
	var tx domain.ChainTransactions
	if a != nil {
		tx = a.Transactions
	}
	return []chainRow{
		{Name: "Base", Color: "#60a5fa", Count: tx.Base},
		{Name: "Ethereum", Color: "#c084fc", Count: tx.Ethereum},
		{Name: "Optimism", Color: "#f87171", Count: tx.Optimism},
		{Name: "Arbitrum", Color: "#22d3ee", Count: tx.Arbitrum},
	}
}

// thousands formats n with comma separators, e.g. 12345 -> "12,345".
func thousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}
