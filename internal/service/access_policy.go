package service

import (
	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/syncqueue"
)

// AccessPolicy answers permission questions against current state. Nothing is cached.
type AccessPolicy struct {
	session *SessionService
	courses *repository.CourseRepository
	aliases *syncqueue.Aliases
}

// NewAccessPolicy shares aliases with the CourseService so reconciled temp ids keep their permissions.
func NewAccessPolicy(session *SessionService, courses *repository.CourseRepository, aliases *syncqueue.Aliases) *AccessPolicy {
	if aliases == nil {
		aliases = syncqueue.NewAliases()
	}
	return &AccessPolicy{session: session, courses: courses, aliases: aliases}
}

func (p *AccessPolicy) course(id string) (model.Course, bool) {
	if c, ok := p.courses.FindByID(id); ok {
		return c, true
	}
	return p.courses.FindByID(p.aliases.Resolve(id))
}

func (p *AccessPolicy) CanEditCourse(courseID string) bool {
	user, ok := p.session.Current()
	if !ok {
		return false
	}
	course, found := p.course(courseID)
	if !found {
		return false
	}
	return canEdit(&user, course)
}

func (p *AccessPolicy) CanViewCourse(courseID string) bool {
	course, found := p.course(courseID)
	if !found {
		return false
	}
	var user *model.User
	if u, ok := p.session.Current(); ok {
		user = &u
	}
	return canView(user, course)
}

func (p *AccessPolicy) CanManageUsers() bool {
	user, ok := p.session.Current()
	return ok && user.Role == model.Admin
}

// CanCreateCourse is true for instructors and admins.
func (p *AccessPolicy) CanCreateCourse() bool {
	user, ok := p.session.Current()
	return ok && (user.Role == model.Admin || user.Role == model.Instructor)
}

func canEdit(user *model.User, course model.Course) bool {
	if user == nil {
		return false
	}
	if user.Role == model.Admin {
		return true
	}
	return user.Role == model.Instructor && course.InstructorID == user.ID
}

// canView: a nil user is an anonymous visitor and is treated like the guest role.
func canView(user *model.User, course model.Course) bool {
	if user == nil || user.Role == model.Guest {
		return course.Published && course.AllowGuests
	}
	if user.Role == model.Admin {
		return true
	}
	if user.Role == model.Instructor && course.InstructorID == user.ID {
		return true
	}
	return course.Published
}
