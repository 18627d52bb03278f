package constants

const (
	ALLOWED_ORIGINS       = "/ventnav/ALLOWED_ORIGINS"
	DATABASE_RDS_ENDPOINT = "/ventnav/DATABASE_RDS_ENDPOINT"
	DATABASE_PORT         = "/ventnav/DATABASE_PORT"
	DATABASE_NAME         = "/ventnav/DATABASE_NAME"
	DATABASE_USERNAME     = "/ventnav/DATABASE_USERNAME"
	DATABASE_PASSWORD     = "/ventnav/DATABASE_PASSWORD"
	SSL_MODE              = "/ventnav/SSL_MODE"
	CAPTURE_BUCKET_NAME   = "/ventnav/CAPTURE_BUCKET_NAME"
	COGNITO_USER_POOL_ID  = "/ventnav/COGNITO_USER_POOL_ID"
	DRIVER_NAME           = "postgres"
)
