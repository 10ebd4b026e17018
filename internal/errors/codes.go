package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY" // 관리자 키 필요

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // 범위 초과
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 상품 (PRODUCT_) ====================
	ProductNotFound    = "PRODUCT_NOT_FOUND"   // 상품 없음
	ProductSlugExists  = "PRODUCT_SLUG_EXISTS" // slug 중복
	ProductUnavailable = "PRODUCT_UNAVAILABLE" // 비공개 상품

	// ==================== 옵션 선택 (SELECTION_) ====================
	SelectionNotFound = "SELECTION_NOT_FOUND" // 선택 세션 없음 또는 만료

	// ==================== 쿠폰 (COUPON_) ====================
	CouponInvalid = "COUPON_INVALID" // 잘못된 쿠폰
	CouponEmpty   = "COUPON_EMPTY"   // 쿠폰 코드 누락

	// ==================== 주문 (ORDER_) ====================
	OrderNotFound       = "ORDER_NOT_FOUND"       // 주문 없음
	OrderEmptySelection = "ORDER_EMPTY_SELECTION" // 수량 0 주문
	OrderInvalidStatus  = "ORDER_INVALID_STATUS"  // 잘못된 주문 상태
	OrderInvalidArea    = "ORDER_INVALID_AREA"    // 잘못된 배송 지역

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalCacheError    = "INTERNAL_CACHE_ERROR"    // 캐시(redis) 오류
)
