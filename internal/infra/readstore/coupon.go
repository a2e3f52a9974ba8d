package readstore

import (
	"context"

	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/converter"
	"rental-booking/internal/infra/db"
)

const getActiveCouponByCode = `SELECT ` + converter.CouponColumns + `
FROM coupons
WHERE code = $1 AND is_active`

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(db db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: db}
}

// CouponByCode returns only active coupons; a deactivated code reads as not found.
func (r *CouponReadStore) CouponByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	c, err := converter.ScanCoupon(r.db.QueryRow(ctx, getActiveCouponByCode, code.String()))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return c, nil
}
