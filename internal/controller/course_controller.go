package controller

import (
	"encoding/json"
	"os"

	"learnhub_client/internal/model"
	"learnhub_client/internal/service"
	"learnhub_client/internal/util"
)

type CourseController struct {
	CourseService  *service.CourseService
	SessionService *service.SessionService
	Policy         *service.AccessPolicy
}

func NewCourseController(courseService *service.CourseService, session *service.SessionService, policy *service.AccessPolicy) *CourseController {
	return &CourseController{CourseService: courseService, SessionService: session, Policy: policy}
}

// List: courses [--category C] [--level L] [--search Q] [--published] [--mine]
func (c *CourseController) List(ctx *Context) {
	category := ctx.Flags().String("category", "", "filter by category")
	level := ctx.Flags().String("level", "", "beginner|intermediate|advanced")
	search := ctx.Flags().StringP("search", "q", "", "search title and description")
	published := ctx.Flags().Bool("published", false, "only published courses")
	mine := ctx.Flags().Bool("mine", false, "only courses I teach")
	if !ctx.Bind(0, "[--category C] [--level L] [--search Q] [--published] [--mine]") {
		return
	}

	filter := model.CourseFilter{Category: *category, Level: model.CourseLevel(*level), Search: *search}
	if ctx.Flags().Changed("published") {
		filter.Published = published
	}
	if *mine {
		user, ok := c.SessionService.Current()
		if !ok {
			ctx.Error(util.ErrNotAuthenticated)
			return
		}
		filter.InstructorID = user.ID
	}
	courses := c.CourseService.ListCourses(filter)
	if courses == nil {
		courses = []model.Course{}
	}
	ctx.Success(courses)
}

// viewableCourse resolves id (temp ids included) and writes the error result when the caller may not see it.
func viewableCourse(ctx *Context, courses *service.CourseService, policy *service.AccessPolicy, id string) (model.Course, bool) {
	course, err := courses.GetCourse(ctx, id)
	if err != nil {
		ctx.Error(err)
		return model.Course{}, false
	}
	if !policy.CanViewCourse(course.ID) {
		ctx.Forbidden()
		return model.Course{}, false
	}
	return course, true
}

func editableCourse(ctx *Context, courses *service.CourseService, policy *service.AccessPolicy, id string) (model.Course, bool) {
	course, err := courses.GetCourse(ctx, id)
	if err != nil {
		ctx.Error(err)
		return model.Course{}, false
	}
	if !policy.CanEditCourse(course.ID) {
		ctx.Forbidden()
		return model.Course{}, false
	}
	return course, true
}

// Get: course <id>
func (c *CourseController) Get(ctx *Context) {
	if !ctx.Bind(1, "<course-id>") {
		return
	}
	course, ok := viewableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	ctx.Success(course)
}

// Create: create-course <title> [--description D] [--category C] [--level L] [--price P] [--published] [--allow-guests]
func (c *CourseController) Create(ctx *Context) {
	description := ctx.Flags().String("description", "", "course description")
	category := ctx.Flags().String("category", "", "category")
	level := ctx.Flags().String("level", "", "beginner|intermediate|advanced")
	thumbnail := ctx.Flags().String("thumbnail", "", "thumbnail url")
	price := ctx.Flags().Float64("price", 0, "price")
	published := ctx.Flags().Bool("published", false, "publish immediately")
	allowGuests := ctx.Flags().Bool("allow-guests", false, "visible to guests when published")
	if !ctx.Bind(1, "<title> [--description D] [--category C] [--level L] [--price P] [--published] [--allow-guests]") {
		return
	}
	if !c.Policy.CanCreateCourse() {
		ctx.Forbidden()
		return
	}

	course, err := c.CourseService.CreateCourse(model.CourseInput{
		Title:       ctx.Arg(0),
		Description: *description,
		Thumbnail:   *thumbnail,
		Category:    *category,
		Level:       model.CourseLevel(*level),
		Price:       *price,
		Published:   *published,
		AllowGuests: *allowGuests,
	})
	ctx.JSON(course, err)
}

// AddLesson: add-lesson <course-id> <title> [--content T] [--video URL] [--duration MIN] [--order N]
func (c *CourseController) AddLesson(ctx *Context) {
	description := ctx.Flags().String("description", "", "lesson description")
	content := ctx.Flags().String("content", "", "lesson body")
	video := ctx.Flags().String("video", "", "video url")
	duration := ctx.Flags().Int("duration", 0, "duration in minutes")
	order := ctx.Flags().Int("order", 0, "position, defaults to last")
	if !ctx.Bind(2, "<course-id> <title> [--content T] [--video URL] [--duration MIN] [--order N]") {
		return
	}
	course, ok := editableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}

	lesson, err := c.CourseService.AddLesson(course.ID, model.LessonInput{
		Title:       ctx.Arg(1),
		Description: *description,
		Content:     *content,
		VideoURL:    *video,
		Duration:    *duration,
		Order:       *order,
	})
	ctx.JSON(lesson, err)
}

// RemoveLesson: remove-lesson <course-id> <lesson-id>
func (c *CourseController) RemoveLesson(ctx *Context) {
	if !ctx.Bind(2, "<course-id> <lesson-id>") {
		return
	}
	course, ok := editableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	err := c.CourseService.RemoveLesson(course.ID, ctx.Arg(1))
	ctx.JSON(map[string]string{"removed": ctx.Arg(1)}, err)
}

// AddQuiz: add-quiz <course-id> <quiz.json>
func (c *CourseController) AddQuiz(ctx *Context) {
	if !ctx.Bind(2, "<course-id> <quiz.json>") {
		return
	}
	course, ok := editableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	raw, err := os.ReadFile(ctx.Arg(1))
	if err != nil {
		ctx.Error(err)
		return
	}
	var input model.QuizInput
	if err := json.Unmarshal(raw, &input); err != nil {
		ctx.BadRequest("invalid quiz file: " + err.Error())
		return
	}
	quiz, err := c.CourseService.AddQuiz(course.ID, input)
	ctx.JSON(quiz, err)
}

func (c *CourseController) Publish(ctx *Context) {
	c.setPublished(ctx, true)
}

func (c *CourseController) Unpublish(ctx *Context) {
	c.setPublished(ctx, false)
}

func (c *CourseController) setPublished(ctx *Context, published bool) {
	if !ctx.Bind(1, "<course-id>") {
		return
	}
	course, ok := editableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	var err error
	if published {
		course, err = c.CourseService.PublishCourse(course.ID)
	} else {
		course, err = c.CourseService.UnpublishCourse(course.ID)
	}
	ctx.JSON(course, err)
}

// Delete: delete-course <course-id>
func (c *CourseController) Delete(ctx *Context) {
	if !ctx.Bind(1, "<course-id>") {
		return
	}
	course, ok := editableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	err := c.CourseService.DeleteCourse(course.ID)
	ctx.JSON(map[string]string{"deleted": course.ID}, err)
}
