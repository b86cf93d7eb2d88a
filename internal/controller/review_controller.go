package controller

import (
	"strconv"

	"learnhub_client/internal/model"
	"learnhub_client/internal/service"
)

type ReviewController struct {
	ReviewService *service.ReviewService
	CourseService *service.CourseService
	Policy        *service.AccessPolicy
}

func NewReviewController(reviewService *service.ReviewService, courses *service.CourseService, policy *service.AccessPolicy) *ReviewController {
	return &ReviewController{ReviewService: reviewService, CourseService: courses, Policy: policy}
}

// Add: review <course-id> <rating> [--comment TEXT]
func (c *ReviewController) Add(ctx *Context) {
	comment := ctx.Flags().StringP("comment", "m", "", "review text")
	if !ctx.Bind(2, "<course-id> <rating 1-5> [--comment TEXT]") {
		return
	}
	rating, err := strconv.Atoi(ctx.Arg(1))
	if err != nil {
		ctx.BadRequest("rating must be a number between 1 and 5")
		return
	}
	course, ok := viewableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	review, err := c.ReviewService.AddReview(model.ReviewInput{CourseID: course.ID, Rating: rating, Comment: *comment})
	ctx.JSON(review, err)
}

// List: reviews <course-id>
func (c *ReviewController) List(ctx *Context) {
	if !ctx.Bind(1, "<course-id>") {
		return
	}
	course, ok := viewableCourse(ctx, c.CourseService, c.Policy, ctx.Arg(0))
	if !ok {
		return
	}
	reviews := c.ReviewService.ListReviews(course.ID)
	if reviews == nil {
		reviews = []model.Review{}
	}
	ctx.Success(reviews)
}
