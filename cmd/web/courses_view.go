package main

import (
	"net/url"

	"karthikeshrobotics.in/web/internal/catalog"
	"karthikeshrobotics.in/web/internal/filter"
)

// CoursesView is the course list with its level and text filters.
type CoursesView struct {
	Lang      string
	Query     filter.Query
	Levels    []string
	Available []catalog.Course
	Upcoming  []catalog.Course
	Empty     bool
}

// CourseDetailView backs the course detail page and its enroll form.
type CourseDetailView struct {
	Lang      string
	CSRFToken string
	Course    catalog.Course
	Lectures  int
	CanEnroll bool
	Added     bool
	InCart    int
}

func buildCoursesView(lang string, courses []catalog.Course, q url.Values) CoursesView {
	query := filter.ParseQuery(q)
	query.Year = 0
	matched := filter.Apply(courses, query)
	available, upcoming := filter.Partition(matched, func(c catalog.Course) bool { return !c.ComingSoon })
	return CoursesView{
		Lang:      lang,
		Query:     query,
		Levels:    filter.Categories(courses),
		Available: available,
		Upcoming:  upcoming,
		Empty:     len(matched) == 0,
	}
}
