package routes

const (
	Health = "/health"

	AuthSignup = "/api/v1/auth/signup"
	AuthLogin  = "/api/v1/auth/login"
	AuthLogout = "/api/v1/auth/logout"

	OwnerSubmit = "/api/v1/owner/submit"

	FreelancerProjects = "/api/v1/freelancer/projects"
	FreelancerApply    = "/api/v1/freelancer/projects/{id}/apply"

	Stays      = "/api/v1/stays"
	StayBySlug = "/api/v1/stays/{slug}"

	Bookings    = "/api/v1/bookings"
	BookingByID = "/api/v1/bookings/{id}"

	StripeWebhook = "/api/v1/stripe/webhook"

	Photo = "/api/v1/photos/{name}"

	AdminProjects       = "/api/v1/admin/projects"
	AdminProject        = "/api/v1/admin/projects/{id}"
	AdminProjectApprove = "/api/v1/admin/projects/{id}/approve"
	AdminProjectReject  = "/api/v1/admin/projects/{id}/reject"
	AdminProjectAssign  = "/api/v1/admin/projects/{id}/assign"
	AdminProjectPublish = "/api/v1/admin/projects/{id}/publish"
	AdminProjectStatus  = "/api/v1/admin/projects/{id}/status"
	AdminProjectNotes   = "/api/v1/admin/projects/{id}/notes"
	AdminProjectListing = "/api/v1/admin/projects/{id}/listing"
	AdminProperty       = "/api/v1/admin/properties/{id}"
)
