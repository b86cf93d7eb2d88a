package controller

import (
	"fmt"
	"strconv"
	"strings"

	"learnhub_client/internal/service"
	"learnhub_client/internal/util"
)

type LearningController struct {
	EnrollmentService  *service.EnrollmentService
	CourseService      *service.CourseService
	CertificateService *service.CertificateService
	SessionService     *service.SessionService
	Policy             *service.AccessPolicy
}

func NewLearningController(enrollments *service.EnrollmentService, courses *service.CourseService,
	certs *service.CertificateService, session *service.SessionService, policy *service.AccessPolicy) *LearningController {
	return &LearningController{
		EnrollmentService:  enrollments,
		CourseService:      courses,
		CertificateService: certs,
		SessionService:     session,
		Policy:             policy,
	}
}

// Enroll: enroll <course-id>
func (c *LearningController) Enroll(ctx *Context) {
	if !ctx.Bind(1, "<course-id>") {
		return
	}
	user, ok := c.SessionService.Current()
	if !ok {
		ctx.Error(util.ErrNotAuthenticated)
		return
	}
	course, ok := viewableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	e, err := c.EnrollmentService.EnrollInCourse(user.ID, course.ID)
	ctx.JSON(e, err)
}

// Enrollments: enrollments
func (c *LearningController) Enrollments(ctx *Context) {
	user, ok := c.SessionService.Current()
	if !ok {
		ctx.Error(util.ErrNotAuthenticated)
		return
	}
	ctx.Success(c.EnrollmentService.ListEnrollments(user.ID))
}

// Complete: complete <course-id> <lesson-id>
func (c *LearningController) Complete(ctx *Context) {
	if !ctx.Bind(2, "<course-id> <lesson-id>") {
		return
	}
	if !c.SessionService.IsAuthenticated() {
		ctx.Error(util.ErrNotAuthenticated)
		return
	}
	course, ok := viewableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	lessonID := ctx.Arg(1)
	if _, found := course.Lesson(lessonID); !found {
		ctx.Error(util.ErrLessonNotFound)
		return
	}
	res, err := c.EnrollmentService.CompleteLesson(course.ID, lessonID)
	if err != nil {
		ctx.Error(err)
		return
	}
	out := map[string]interface{}{"result": res}
	if next, ok, _ := c.CourseService.NextLesson(course.ID, lessonID); ok {
		out["nextLesson"] = next
	}
	ctx.Success(out)
}

// Quiz: quiz <course-id> <quiz-id> --answer q1=0,2 --answer q2=1
func (c *LearningController) Quiz(ctx *Context) {
	raw := ctx.Flags().StringArrayP("answer", "a", nil, "question-id=option[,option...]")
	if !ctx.Bind(2, "<course-id> <quiz-id> --answer <question-id>=<i>[,<j>...]") {
		return
	}
	answers, err := parseAnswers(*raw)
	if err != nil {
		ctx.BadRequest(err.Error())
		return
	}
	if !c.SessionService.IsAuthenticated() {
		ctx.Error(util.ErrNotAuthenticated)
		return
	}
	course, ok := viewableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	res, err := c.EnrollmentService.SubmitQuizAttempt(course.ID, ctx.Arg(1), answers)
	ctx.JSON(res, err)
}

func parseAnswers(raw []string) (map[string][]int, error) {
	answers := make(map[string][]int, len(raw))
	for _, a := range raw {
		qid, opts, ok := strings.Cut(a, "=")
		if !ok || qid == "" {
			return nil, fmt.Errorf("answer %q must look like question-id=0,2", a)
		}
		var selected []int
		for _, o := range strings.Split(opts, ",") {
			o = strings.TrimSpace(o)
			if o == "" {
				continue
			}
			n, err := strconv.Atoi(o)
			if err != nil {
				return nil, fmt.Errorf("answer %q: %q is not an option index", a, o)
			}
			selected = append(selected, n)
		}
		answers[qid] = append(answers[qid], selected...)
	}
	return answers, nil
}

// Certificate: certificate <course-id>
func (c *LearningController) Certificate(ctx *Context) {
	if !ctx.Bind(1, "<course-id>") {
		return
	}
	course, ok := viewableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	cert, err := c.CertificateService.Certificate(course.ID)
	ctx.JSON(cert, err)
}
