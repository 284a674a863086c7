package api

const (
	ContentUser     = "user"
	ContentUserRole = "userRole"
)

func GetUsers() Payload {
	return *newPayload(ContentUser)
}

// ImportUsers encodes a user import. It adds users and updates the privileges
// of existing ones.
func ImportUsers(in ImportInput) (Payload, error) {
	return importRecords("ImportUsers", ContentUser, in)
}

type DeleteUsersInput struct {
	Users []string
}

func DeleteUsers(in DeleteUsersInput) (Payload, error) {
	if in.Users == nil {
		return Payload{}, missing("DeleteUsers", "users")
	}
	p := newActionPayload(ContentUser, ActionDelete)
	p.setList("users", in.Users)
	return *p, nil
}

func GetUserRoles() Payload {
	return *newPayload(ContentUserRole)
}

func ImportUserRoles(in ImportInput) (Payload, error) {
	return importRecords("ImportUserRoles", ContentUserRole, in)
}

type DeleteUserRolesInput struct {
	Roles []string
}

// DeleteUserRoles encodes a deletion of roles by unique role name.
func DeleteUserRoles(in DeleteUserRolesInput) (Payload, error) {
	if in.Roles == nil {
		return Payload{}, missing("DeleteUserRoles", "roles")
	}
	p := newActionPayload(ContentUserRole, ActionDelete)
	p.setList("roles", in.Roles)
	return *p, nil
}
