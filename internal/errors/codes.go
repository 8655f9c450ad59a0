package errors

// Error code constants in CATEGORY_SPECIFIC_DETAIL form. The admin
// frontend maps these codes to localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationRequired      = "VALIDATION_REQUIRED"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogCategoryNotFound    = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogSubcategoryNotFound = "CATALOG_SUBCATEGORY_NOT_FOUND"
	CatalogBrandNotFound       = "CATALOG_BRAND_NOT_FOUND"
	CatalogDuplicateSlug       = "CATALOG_DUPLICATE_SLUG"
	CatalogDuplicateBrandName  = "CATALOG_DUPLICATE_BRAND_NAME"
	CatalogInvalidRelation     = "CATALOG_INVALID_RELATION"
	CatalogSubcategoryInUse    = "CATALOG_SUBCATEGORY_IN_USE"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound      = "PRODUCT_NOT_FOUND"
	ProductDuplicateSlug = "PRODUCT_DUPLICATE_SLUG"

	// ==================== Variants (VARIANT_) ====================
	VariantNotFound     = "VARIANT_NOT_FOUND"
	VariantDuplicateSKU = "VARIANT_DUPLICATE_SKU"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound         = "ORDER_NOT_FOUND"
	OrderEmptyItems       = "ORDER_EMPTY_ITEMS"
	OrderInvalidStatus    = "ORDER_INVALID_STATUS"
	OrderSubtotalMismatch = "ORDER_SUBTOTAL_MISMATCH"
	OrderNumberExhausted  = "ORDER_NUMBER_EXHAUSTED"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
