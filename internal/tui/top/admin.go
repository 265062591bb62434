package top

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/camdeck/darkroom/internal/nav"
	"github.com/camdeck/darkroom/internal/photo"
	"github.com/camdeck/darkroom/internal/tui"
)

// tenant is a workspace account shown on the admin/tenants pane. The console
// manages a single local tenant.
type tenant struct {
	id   uuid.UUID
	name string
}

// adminModel renders the admin tab's read-only panes.
type adminModel struct {
	svc    *photo.Service
	tenant tenant

	width  int
	height int
}

func newAdminModel(svc *photo.Service) adminModel {
	return adminModel{
		svc:    svc,
		tenant: tenant{id: uuid.New(), name: "local"},
	}
}

func (m adminModel) setSize(width, height int) adminModel {
	m.width = width
	m.height = height
	return m
}

func (m adminModel) view(subTab nav.SubTab) string {
	var b strings.Builder
	switch subTab {
	case nav.SubTabTenants:
		b.WriteString(tui.TitleStyle.Render("Tenants") + "\n\n")
		b.WriteString(fmt.Sprintf("%s  %s\n", m.tenant.id, tui.Bold.Render(m.tenant.name)))
	case nav.SubTabStorage:
		page := m.svc.List(photo.Filter{}, 0, math.MaxInt)
		var bytes int64
		for _, p := range page.Photos {
			bytes += p.Size
		}
		b.WriteString(tui.TitleStyle.Render("Storage") + "\n\n")
		b.WriteString(fmt.Sprintf("photos    %d\n", page.Total))
		b.WriteString(fmt.Sprintf("keywords  %d\n", len(m.svc.Keywords())))
		b.WriteString(fmt.Sprintf("size      %s\n", humanBytes(bytes)))
	}
	return tui.Regular.Margin(0, 1).Render(b.String())
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
