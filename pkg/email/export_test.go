package email

var (
	SanitizeFilename      = sanitizeFilename
	TemplateModel         = templateModel
	ToPostmarkAttachments = toPostmarkAttachments
)
