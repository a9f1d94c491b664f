package ui

import (
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"github.com/pirates/party-console/internal/core/domain"
)

const (
	stylesheet = "https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css"
	csrfField  = "_csrf"
)

// csrfInput echoes the request's CSRF token back with the form.
func csrfInput(token string) gomponents.Node {
	return gomponents.If(token != "", html.Input(html.Type("hidden"), html.Name(csrfField), html.Value(token)))
}

func document(title string, body ...gomponents.Node) gomponents.Node {
	return html.HTML(
		html.Lang("ko"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title+" | Pirates")),
			html.Link(html.Rel("stylesheet"), html.Href(stylesheet)),
		),
		html.Body(body...),
	)
}

// Layout wraps body in the signed-in page shell: the accommodation name, the
// signed-in user and a sign-out form.
func Layout(title string, p domain.Principal, acc domain.AccommodationContext, csrf string, body ...gomponents.Node) gomponents.Node {
	who := p.Username
	if who == "" {
		who = p.Role.String()
	}
	house := "Pirates"
	if acc.Name != "" {
		house = acc.Name
	}

	return document(title,
		html.Main(
			html.Class("layout"),
			html.Div(
				html.Class("topbar"),
				html.Strong(gomponents.Text(house)),
				html.Div(
					html.P(html.Class("muted"), gomponents.Text("Signed in as "+who)),
					html.Form(
						html.Method("post"),
						html.Action("/logout"),
						csrfInput(csrf),
						html.Button(html.Type("submit"), html.Class("btn"), gomponents.Text("로그아웃")),
					),
				),
			),
			html.H1(html.Class("page-title"), gomponents.Text(title)),
			gomponents.Group(body),
		),
	)
}

func familyTitle(f domain.Family) string {
	switch f {
	case domain.FamilyAdmin:
		return "관리자 로그인"
	case domain.FamilyOwner:
		return "사장님 로그인"
	case domain.FamilyManager:
		return "매니저 로그인"
	case domain.FamilyUser, domain.FamilyNone:
		return "로그인"
	default:
		return "로그인"
	}
}

// LoginPage is the username/password form of a console area.
func LoginPage(f domain.Family, errMsg, csrf string) gomponents.Node {
	content := []gomponents.Node{
		html.H1(gomponents.Text(familyTitle(f))),
		html.Form(
			html.Method("post"),
			html.Action("/"+string(f)+"/login"),
			html.Class("login-form"),
			csrfInput(csrf),
			html.Label(html.For("username"), gomponents.Text("아이디")),
			html.Input(html.ID("username"), html.Name("username"), html.Type("text"), html.Required()),
			html.Label(html.For("password"), gomponents.Text("비밀번호")),
			html.Input(html.ID("password"), html.Name("password"), html.Type("password"), html.Required()),
			html.Button(html.Type("submit"), html.Class("btn btn-primary"), gomponents.Text("로그인")),
		),
	}
	if f == domain.FamilyOwner || f == domain.FamilyManager {
		content = append(content, html.A(html.Href("/"+string(f)+"/signup"), html.Class("btn-link"), gomponents.Text("회원가입")))
	}
	if errMsg = strings.TrimSpace(errMsg); errMsg != "" {
		content = append([]gomponents.Node{html.P(html.Class("error"), gomponents.Text(errMsg))}, content...)
	}
	return document(familyTitle(f), html.Main(html.Class("login-wrap"), gomponents.Group(content)))
}

// UserLoginPage sends guests to the Kakao sign-in.
func UserLoginPage(kakaoURL string) gomponents.Node {
	return document(familyTitle(domain.FamilyUser),
		html.Main(
			html.Class("login-wrap"),
			html.H1(gomponents.Text("Pirates")),
			html.P(gomponents.Text("게스트하우스 파티에 오신 것을 환영합니다.")),
			html.A(html.Href(kakaoURL), html.Class("btn btn-primary"), gomponents.Text("카카오로 시작하기")),
		),
	)
}

// SignupPage completes the profile of a first-time Kakao user.
func SignupPage(p domain.Principal, errMsg, csrf string) gomponents.Node {
	field := func(id, label, typ string) gomponents.Node {
		return gomponents.Group([]gomponents.Node{
			html.Label(html.For(id), gomponents.Text(label)),
			html.Input(html.ID(id), html.Name(id), html.Type(typ), html.Required()),
		})
	}
	form := html.Form(
		html.Method("post"),
		html.Action("/user/signup"),
		csrfInput(csrf),
		field("name", "이름", "text"),
		field("phone", "전화번호", "tel"),
		html.Label(html.For("gender"), gomponents.Text("성별")),
		html.Select(
			html.ID("gender"),
			html.Name("gender"),
			html.Option(html.Value("true"), gomponents.Text("남자")),
			html.Option(html.Value("false"), gomponents.Text("여자")),
		),
		field("age", "나이", "number"),
		field("job", "직업", "text"),
		field("mbti", "MBTI", "text"),
		field("region", "지역", "text"),
		html.Button(html.Type("submit"), html.Class("btn btn-primary"), gomponents.Text("가입하기")),
	)
	body := []gomponents.Node{form}
	if errMsg != "" {
		body = append([]gomponents.Node{html.P(html.Class("error"), gomponents.Text(errMsg))}, body...)
	}
	return Layout("회원가입", p, domain.AccommodationContext{}, csrf, body...)
}

// StaffSignupState is what the owner or manager signup page shows on top of
// the empty form.
type StaffSignupState struct {
	Username string
	// Checked is set once the duplicate-ID check ran for Username.
	Checked bool
	Taken   bool
	Error   string
	CSRF    string
}

// StaffSignupPage registers an owner or manager account. The ID has its own
// small form so the duplicate check works without scripts.
func StaffSignupPage(f domain.Family, st StaffSignupState) gomponents.Node {
	title := "사장님 회원가입"
	if f == domain.FamilyManager {
		title = "매니저 회원가입"
	}
	action := "/" + string(f) + "/signup"
	field := func(id, label, typ, placeholder string) gomponents.Node {
		return gomponents.Group([]gomponents.Node{
			html.Label(html.For(id), gomponents.Text(label)),
			html.Input(html.ID(id), html.Name(id), html.Type(typ), html.Placeholder(placeholder), html.Required()),
		})
	}

	var check gomponents.Node
	switch {
	case st.Checked && st.Taken:
		check = html.P(html.Class("error"), gomponents.Text("* 사용할 수 없는 아이디입니다."))
	case st.Checked:
		check = html.P(html.Class("success"), gomponents.Text("사용할 수 있는 아이디입니다."))
	}

	content := []gomponents.Node{
		html.H1(gomponents.Text(title)),
		html.P(html.Class("muted"), gomponents.Text("회원정보는 개인정보취급방침에 따라 안전하게 보호되며 회원님의 명확한 동의 없이 공개 또는 제 3자에게 제공되지 않습니다.")),
		gomponents.If(st.Error != "", html.P(html.Class("error"), gomponents.Text(st.Error))),
		html.Form(
			html.Method("get"),
			html.Action(action),
			html.Class("duplicate-form"),
			html.Label(html.For("check_username"), gomponents.Text("아이디")),
			html.Input(html.ID("check_username"), html.Name("username"), html.Type("text"), html.Value(st.Username), html.Placeholder("아이디 입력(6~20자)"), html.Required()),
			html.Button(html.Type("submit"), html.Class("btn"), gomponents.Text("중복확인")),
		),
		check,
		html.Form(
			html.Method("post"),
			html.Action(action),
			html.Class("signup-form"),
			csrfInput(st.CSRF),
			html.Label(html.For("username"), gomponents.Text("아이디")),
			html.Input(html.ID("username"), html.Name("username"), html.Type("text"), html.Value(st.Username), html.Required()),
			field("password", "비밀번호", "password", "비밀번호 입력 (6~20자)"),
			field("password_confirm", "비밀번호 확인", "password", "비밀번호 재입력"),
			field("name", "이름", "text", "이름을 입력해주세요."),
			field("phone", "전화번호", "tel", "전화번호를 입력해주세요."),
			gomponents.If(f == domain.FamilyManager, field("owner_id", "사장님 번호", "number", "소속 게스트하우스 사장님 번호")),
			html.Button(html.Type("submit"), html.Class("btn btn-primary"), gomponents.Text("가입하기")),
			html.A(html.Href("/"+string(f)+"/login"), html.Class("btn"), gomponents.Text("가입취소")),
		),
	}
	return document(title, html.Main(html.Class("login-wrap"), gomponents.Group(content)))
}
