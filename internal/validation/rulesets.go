package validation

// Rule sets bound to routes in the router.
var (
	Register = RuleSet{
		Body("name", "required", "Please enter name"),
		Body("email", "required,email", "Please enter a valid email"),
		Body("password", "required", "Please enter password"),
		Body("skills", "required", "Please enter skills"),
		Body("role", "role", "Role must be applicant or admin").IfPresent(),
	}

	Login = RuleSet{
		Body("email", "required,email", "Please enter a valid email"),
		Body("password", "required", "Please enter password"),
	}

	ChangePassword = RuleSet{
		Body("oldPassword", "required", "Please enter your old password"),
		Body("newPassword", "required", "Please enter a new password"),
		Body("confirmPassword", "required", "Please confirm your new password"),
	}

	UpdateProfile = RuleSet{
		Body("newName", "required", "Name cannot be empty").IfPresent(),
		Body("newEmail", "required,email", "Please enter a valid email").IfPresent(),
		Body("newSkills", "required", "Skills cannot be empty").IfPresent(),
	}

	DeleteAccount = RuleSet{
		Body("password", "required", "Please enter your password to delete your account"),
	}

	Job = RuleSet{
		Body("title", "required", "Please enter title"),
		Body("description", "required", "Please enter description"),
		Body("companyName", "required", "Please enter company name"),
		Body("location", "required", "Please enter location"),
		Body("skillsRequired", "required", "Please enter skills required"),
		Body("experience", "required", "Please enter experience"),
		Body("salary", "required,numeric", "Please enter salary"),
		Body("category", "required", "Please enter category"),
		Body("employmentType", "required,employment_type", "Please enter employment type"),
		Body("status", "job_status", "Status must be active or closed").IfPresent(),
	}

	// UpdateJob accepts partial updates but keeps the enum and number checks.
	UpdateJob = RuleSet{
		Path("id", "required,number", "Please provide a valid Job ID"),
		Body("title", "required", "Title cannot be empty").IfPresent(),
		Body("salary", "numeric", "Salary must be a number").IfPresent(),
		Body("employmentType", "employment_type", "Employment type is invalid").IfPresent(),
		Body("status", "job_status", "Status must be active or closed").IfPresent(),
	}

	JobID = RuleSet{
		Path("id", "required,number", "Please provide a valid Job ID"),
	}

	ApplicationID = RuleSet{
		Path("id", "required,number", "Please provide a valid Application ID"),
	}

	UserID = RuleSet{
		Path("id", "required,number", "Please provide a valid User ID"),
	}

	UpdateUserRole = RuleSet{
		Path("id", "required,number", "Please provide a valid User ID"),
		Body("role", "required,role", "Role must be applicant or admin"),
	}

	UpdateApplicationStatus = RuleSet{
		Path("id", "required,number", "Please provide a valid Application ID"),
		Body("status", "required,application_status", "Status must be pending, accepted or rejected"),
	}
)
