package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCropActive(t *testing.T) {
	tests := []struct {
		name   string
		status CropStatus
		want   bool
	}{
		{"planted", CropStatusPlanted, true},
		{"growing", CropStatusGrowing, true},
		{"harvested", CropStatusHarvested, false},
		{"unknown status", CropStatus("composted"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Crop{Status: tt.status}.Active())
		})
	}
}

func TestSyncOperationValid(t *testing.T) {
	assert.True(t, SyncOpCreate.Valid())
	assert.True(t, SyncOpUpdate.Valid())
	assert.True(t, SyncOpDelete.Valid())
	assert.False(t, SyncOperation("upsert").Valid())
	assert.False(t, SyncOperation("").Valid())
}

func TestSyncTables(t *testing.T) {
	for _, table := range []string{
		"plots", "crops", "inventory_items", "stock_logs",
		"field_usage_logs", "expenses", "suppliers",
	} {
		assert.True(t, SyncTables[table], table)
	}

	// Farms have no sync status column and never enter the queue
	assert.False(t, SyncTables["farms"])
	assert.False(t, SyncTables["alerts"])
}
