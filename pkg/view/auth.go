package view

type LoginForm struct {
	Email string
}

type LoginPage struct {
	Form     LoginForm
	Errors   map[string]string
	PageErr  string
	ReturnTo string
}

type RegisterForm struct {
	FirstName string
	LastName  string
	Email     string
}

type RegisterPage struct {
	Form    RegisterForm
	Errors  map[string]string
	PageErr string
}
