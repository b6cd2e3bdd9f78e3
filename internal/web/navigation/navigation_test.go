package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Complaints", "complaints", "list")

	assert.Equal(t, "Complaints", ctx.PageTitle)
	assert.Equal(t, "complaints", ctx.ActiveSection)
	assert.Equal(t, "list", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
}

func TestContext_AddBreadcrumb(t *testing.T) {
	ctx := NewContext("Complaints", "complaints", "list")

	ctx.AddBreadcrumb("Home", "/", false)
	assert.Len(t, ctx.Breadcrumbs, 1)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "/", ctx.Breadcrumbs[0].URL)
	assert.False(t, ctx.Breadcrumbs[0].Active)

	ctx.AddBreadcrumb("Complaints", "/complaints", false)
	assert.Len(t, ctx.Breadcrumbs, 2)
	assert.Equal(t, "Complaints", ctx.Breadcrumbs[1].Title)

	ctx.AddBreadcrumb("CMP-1", "/complaints/1", true)
	assert.Len(t, ctx.Breadcrumbs, 3)
	assert.True(t, ctx.Breadcrumbs[2].Active)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Activity", "admin", "activity").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Admin", "/admin", false).
		AddBreadcrumb("Activity", "/admin/activity", true)

	assert.Len(t, ctx.Breadcrumbs, 3)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "Admin", ctx.Breadcrumbs[1].Title)
	assert.Equal(t, "Activity", ctx.Breadcrumbs[2].Title)
	assert.True(t, ctx.Breadcrumbs[2].Active)
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Permissions", "admin", "permissions")

	assert.True(t, ctx.IsActive("admin", "permissions"))
	assert.False(t, ctx.IsActive("dashboard", "permissions"))
	assert.False(t, ctx.IsActive("admin", "staff"))
	assert.False(t, ctx.IsActive("dashboard", "main"))
}

func TestContext_IsSectionActive(t *testing.T) {
	ctx := NewContext("Permissions", "admin", "permissions")

	assert.True(t, ctx.IsSectionActive("admin"))
	assert.False(t, ctx.IsSectionActive("dashboard"))
	assert.False(t, ctx.IsSectionActive("complaints"))
}

func TestBreadcrumbItem(t *testing.T) {
	item := BreadcrumbItem{
		Title:  "Test",
		URL:    "/test",
		Active: true,
	}

	assert.Equal(t, "Test", item.Title)
	assert.Equal(t, "/test", item.URL)
	assert.True(t, item.Active)
}
