package valkey

// AclDelUser deletes an ACL user. The source command is variadic on the
// wire but spec.md §4.3.4's catalog specifies the single-user form
// literally (unlike DEL/HDEL, this one is not flagged as an Open
// Question), so this stays single-argument and strict: any reply other
// than Integer(1) is a KindClient error.
func (c *Connection) AclDelUser(user string) error {
	v, err := c.dispatch("ACL", "DELUSER", user)
	if err != nil {
		return err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return unexpectedShape(v)
	}
	if n == 1 {
		return nil
	}
	return ClientErrorf("Unexpected response: %d users deleted", n)
}

// AclGenPass asks the server to generate a random password.
func (c *Connection) AclGenPass() (string, error) {
	v, err := c.dispatch("ACL", "GENPASS")
	if err != nil {
		return "", err
	}
	b, ok := v.BulkStringValue()
	if !ok {
		return "", unexpectedShape(v)
	}
	return string(b), nil
}

// AclSetUser applies the given ACL rule tokens to user.
func (c *Connection) AclSetUser(user string, rules ...string) error {
	args := append([]string{"ACL", "SETUSER", user}, rules...)
	v, err := c.dispatch(args...)
	if err != nil {
		return err
	}
	return expectOK(v)
}
