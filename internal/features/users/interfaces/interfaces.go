package users_interfaces

// EmailSender queues an outbound email. Delivery is best effort,
// implementations log failures instead of returning them.
type EmailSender interface {
	SendPasswordResetEmail(to string, name string, resetURL string)
	SendVerificationEmail(to string, name string, verifyURL string)
}
