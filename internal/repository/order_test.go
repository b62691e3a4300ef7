package repository

import (
	"context"
	"path/filepath"
	"testing"

	"novapanel/internal/client"
	"novapanel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) OrderRepository {
	t.Helper()
	db, err := client.InitSqliteClient(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	return NewOrderRepository(db)
}

func seedOrder(t *testing.T, repo OrderRepository, orderID string, status model.OrderStatus) {
	t.Helper()
	err := repo.Create(context.Background(), &model.Order{
		OrderID:   orderID,
		PanelName: "budi",
		PlanTier:  "1gb",
		Amount:    1000,
		Status:    string(status),
	})
	require.NoError(t, err)
}

func TestCreateAndFindRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedOrder(t, repo, "NOVA_1", model.StatusPending)

	got, err := repo.FindByOrderID(ctx, "NOVA_1")
	assert.NoError(t, err)
	assert.Equal(t, "NOVA_1", got.OrderID)
	assert.Equal(t, "budi", got.PanelName)
	assert.Equal(t, "1gb", got.PlanTier)
	assert.Equal(t, 1000, got.Amount)
	assert.Equal(t, string(model.StatusPending), got.Status)
	assert.False(t, got.PanelProvisioned)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestFindUnknownOrder(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.FindByOrderID(context.Background(), "NOVA_MISSING")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedOrder(t, repo, "NOVA_1", model.StatusPending)

	assert.NoError(t, repo.UpdateStatus(ctx, "NOVA_1", model.StatusPaid))

	got, err := repo.FindByOrderID(ctx, "NOVA_1")
	assert.NoError(t, err)
	assert.Equal(t, string(model.StatusPaid), got.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.UpdateStatus(context.Background(), "NOVA_MISSING", model.StatusPaid)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkProvisionedStoresResult(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedOrder(t, repo, "NOVA_1", model.StatusPaid)

	res := &model.ProvisioningResult{
		UserID:           7,
		Username:         "budi",
		Password:         "secret12",
		Email:            "budi@panel.novabot",
		ServerID:         42,
		ServerIdentifier: "abcd1234",
		ServerName:       "Budi 1GB Server",
		PanelURL:         "https://panel.example/server/abcd1234",
		RAMMB:            1024,
		DiskMB:           1024,
		CPUPercent:       40,
	}
	assert.NoError(t, repo.MarkProvisioned(ctx, "NOVA_1", res))

	got, err := repo.FindByOrderID(ctx, "NOVA_1")
	assert.NoError(t, err)
	assert.True(t, got.PanelProvisioned)
	assert.Equal(t, 7, got.PanelUserID)
	assert.Equal(t, "budi", got.PanelUsername)
	assert.Equal(t, "secret12", got.PanelPassword)
	assert.Equal(t, 42, got.ServerID)
	assert.Equal(t, "abcd1234", got.ServerIdentifier)
	assert.Equal(t, 1024, got.RAMMB)
	assert.Equal(t, 40, got.CPUPercent)
}

func TestMarkProvisionedOnlyOnce(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedOrder(t, repo, "NOVA_1", model.StatusPaid)

	res := &model.ProvisioningResult{UserID: 7, ServerID: 42}
	assert.NoError(t, repo.MarkProvisioned(ctx, "NOVA_1", res))

	err := repo.MarkProvisioned(ctx, "NOVA_1", &model.ProvisioningResult{UserID: 8, ServerID: 99})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.FindByOrderID(ctx, "NOVA_1")
	assert.NoError(t, err)
	assert.Equal(t, 42, got.ServerID)
}

func TestListByStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedOrder(t, repo, "NOVA_1", model.StatusPending)
	seedOrder(t, repo, "NOVA_2", model.StatusPaid)
	seedOrder(t, repo, "NOVA_3", model.StatusPending)

	pending, err := repo.ListByStatus(ctx, model.StatusPending)
	assert.NoError(t, err)
	assert.Len(t, pending, 2)

	expired, err := repo.ListByStatus(ctx, model.StatusExpired)
	assert.NoError(t, err)
	assert.Empty(t, expired)
}
