package app

import (
	"sort"

	"learnhub_client/internal/controller"
)

type route struct {
	usage   string
	handler controller.HandlerFunc
}

func (a *App) handle(name, usage string, h controller.HandlerFunc) {
	a.routes[name] = route{usage: usage, handler: h}
}

func (a *App) registerRoutes(c *controllers) {
	a.routes = make(map[string]route)

	// 1. 账号
	a.registerAuthRoutes(c)

	// 2. 课程目录与编辑
	a.registerCourseRoutes(c)

	// 3. 学习
	a.registerLearningRoutes(c)

	// 4. 管理员
	a.registerAdminRoutes(c)

	a.handle("help", "list commands", a.help)
}

func (a *App) registerAuthRoutes(c *controllers) {
	a.handle("login", "<email> <password>", c.auth.Login)
	a.handle("register", "<name> <email> <password>", c.auth.Register)
	a.handle("logout", "", c.auth.Logout)
	a.handle("whoami", "", c.auth.WhoAmI)
	a.handle("profile", "[--name N] [--avatar URL] [--bio TEXT]", c.auth.UpdateProfile)
	a.handle("upload", "<image|video|pdf> <path>", c.upload.Upload)
}

func (a *App) registerCourseRoutes(c *controllers) {
	a.handle("courses", "[--category C] [--level L] [--search Q] [--published] [--mine]", c.course.List)
	a.handle("course", "<course-id>", c.course.Get)
	a.handle("create-course", "<title> [--description D] [--category C] [--level L] [--price P] [--published] [--allow-guests]", c.course.Create)
	a.handle("add-lesson", "<course-id> <title> [--content T] [--video URL] [--duration MIN] [--order N]", c.course.AddLesson)
	a.handle("remove-lesson", "<course-id> <lesson-id>", c.course.RemoveLesson)
	a.handle("add-quiz", "<course-id> <quiz.json>", c.course.AddQuiz)
	a.handle("publish", "<course-id>", c.course.Publish)
	a.handle("unpublish", "<course-id>", c.course.Unpublish)
	a.handle("delete-course", "<course-id>", c.course.Delete)
}

func (a *App) registerLearningRoutes(c *controllers) {
	a.handle("enroll", "<course-id>", c.learning.Enroll)
	a.handle("enrollments", "", c.learning.Enrollments)
	a.handle("complete", "<course-id> <lesson-id>", c.learning.Complete)
	a.handle("quiz", "<course-id> <quiz-id> --answer <question-id>=<i>[,<j>...]", c.learning.Quiz)
	a.handle("certificate", "<course-id>", c.learning.Certificate)
	a.handle("review", "<course-id> <rating 1-5> [--comment TEXT]", c.review.Add)
	a.handle("reviews", "<course-id>", c.review.List)
	a.handle("dashboard", "[--as learner|instructor|admin]", c.dashboard.Show)
}

func (a *App) registerAdminRoutes(c *controllers) {
	a.handle("users", "", c.user.List)
	a.handle("set-role", "<user-id> <admin|instructor|learner|guest>", c.user.SetRole)
	a.handle("adjust-points", "<user-id> <delta>", c.user.AdjustPoints)
}

type commandHelp struct {
	Command string `json:"command"`
	Usage   string `json:"usage,omitempty"`
}

func (a *App) help(ctx *controller.Context) {
	names := make([]string, 0, len(a.routes))
	for name := range a.routes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]commandHelp, 0, len(names)+1)
	for _, name := range names {
		out = append(out, commandHelp{Command: name, Usage: a.routes[name].usage})
	}
	out = append(out, commandHelp{Command: "shell", Usage: "interactive mode"})
	ctx.Success(out)
}
