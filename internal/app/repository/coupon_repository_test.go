package repository

import (
	"testing"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponRepository_FindActive(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewCouponRepository(testDB)
	require.NoError(t, repo.Create(&model.Coupon{Code: "SAVE50", Amount: 50, Active: true}))
	require.NoError(t, repo.Create(&model.Coupon{Code: "OLD", Amount: 10, Active: false}))
	require.NoError(t, repo.Create(&model.Coupon{Code: "EID", Amount: 120, Active: true}))

	coupons, err := repo.FindActive()
	require.NoError(t, err)
	require.Len(t, coupons, 2)
	assert.Equal(t, "EID", coupons[0].Code)
	assert.Equal(t, "SAVE50", coupons[1].Code)
}

func TestCouponRepository_Upsert(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewCouponRepository(testDB)
	require.NoError(t, repo.Upsert(&model.Coupon{Code: "SAVE50", Amount: 50, Active: true}))
	require.NoError(t, repo.Upsert(&model.Coupon{Code: "SAVE50", Amount: 80, Active: false}))

	var coupons []model.Coupon
	require.NoError(t, testDB.Find(&coupons).Error)
	require.Len(t, coupons, 1)
	assert.Equal(t, 80.0, coupons[0].Amount)
	assert.False(t, coupons[0].Active)

	active, err := repo.FindActive()
	require.NoError(t, err)
	assert.Empty(t, active)
}
