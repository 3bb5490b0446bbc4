package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/seo"
)

// CoursesHandler renders the course catalogue.
func (s *site) CoursesHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	title := s.i18nOrDefault(lang, "courses.title", "Courses")
	desc := s.i18nOrDefault(lang, "courses.description", "Self-paced robotics courses: ROS 2, advanced robotics and hands-on projects.")
	vm := s.basePage(r, title, desc, nil)
	vm.Courses = buildCoursesView(lang, s.catalog.Courses, r.URL.Query())
	s.renderPage(w, r, "courses", vm)
}

// CourseDetailHandler renders one course with its curriculum and enroll box.
func (s *site) CourseDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	course, ok := s.catalog.Course(chi.URLParam(r, "id"))
	if !ok {
		s.renderNotFound(w, r, NotFoundView{
			Heading:   s.i18nOrDefault(lang, "courses.notfound", "Course not found"),
			BackHref:  "/courses",
			BackLabel: s.i18nOrDefault(lang, "courses.back", "Back to Courses"),
		})
		return
	}

	vm := s.basePage(r, course.Title, course.Description, map[string]string{course.ID: course.Title})
	view := CourseDetailView{
		Lang:      lang,
		CSRFToken: mw.CSRFToken(r),
		Course:    course,
		Lectures:  course.LectureCount(),
		CanEnroll: !course.ComingSoon,
		Added:     r.URL.Query().Get("added") == "1",
	}
	if line, ok := s.cartFor(r).Item(course.ID); ok {
		view.InCart = line.Quantity
	}
	vm.Course = view
	vm.SEO.OG.Image = s.assetURL(course.Image)
	vm.SEO.Twitter.Image = vm.SEO.OG.Image
	vm.SEO.AddJSONLD(seo.Course(course.Title, course.Description, vm.SEO.Canonical, s.cfg.Site.Name, course.Price))
	s.renderPage(w, r, "course", vm)
}

// CourseEnrollHandler adds the course to the cart and keeps the shopper on
// the course page.
func (s *site) CourseEnrollHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.addCourse(w, r, id, "/courses/"+id+"?added=1")
}
