package scheduler

import (
	"github.com/ikkim/storefront-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CouponRefresher reloads the in-memory coupon book.
type CouponRefresher interface {
	Refresh() error
}

// CouponScheduler 쿠폰 목록 주기적 갱신 스케줄러
type CouponScheduler struct {
	cron      *cron.Cron
	spec      string
	refresher CouponRefresher
}

// NewCouponScheduler spec은 cron 표현식 또는 "@every 5m" 형식
func NewCouponScheduler(refresher CouponRefresher, spec string) *CouponScheduler {
	return &CouponScheduler{
		cron:      cron.New(),
		spec:      spec,
		refresher: refresher,
	}
}

// Start loads the book once and then keeps it fresh on the schedule.
func (s *CouponScheduler) Start() error {
	s.refresh()

	if _, err := s.cron.AddFunc(s.spec, s.refresh); err != nil {
		logger.Error("Failed to add cron job for coupon refresh", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Coupon scheduler started successfully", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *CouponScheduler) refresh() {
	if err := s.refresher.Refresh(); err != nil {
		logger.Error("Failed to refresh coupons from scheduler", err)
	}
}

// Stop 스케줄러 중지 (실행 중인 작업은 끝날 때까지 대기)
func (s *CouponScheduler) Stop() {
	logger.Info("Stopping coupon scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Coupon scheduler stopped")
}
