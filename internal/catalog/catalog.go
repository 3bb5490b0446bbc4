package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"karthikeshrobotics.in/web/internal/filter"
)

const defaultDataDir = "data"

// Achievement is a past workshop, training, or event shown on the achievements page.
type Achievement struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Location string   `yaml:"location"`
	Category string   `yaml:"category"`
	Year     int      `yaml:"year"`
	Images   []string `yaml:"images"`
}

func (a Achievement) RecordYear() int        { return a.Year }
func (a Achievement) RecordCategory() string { return a.Category }
func (a Achievement) RecordDate() string     { return a.Date }
func (a Achievement) SearchText() []string   { return []string{a.Title, a.Location} }

// Cover returns the first image or "".
func (a Achievement) Cover() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}

// Course is an online course that can be enrolled via the cart.
type Course struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Level       string          `yaml:"level"`
	Duration    string          `yaml:"duration"`
	Students    int             `yaml:"students"`
	Rating      float64         `yaml:"rating"`
	Price       int64           `yaml:"price"`
	Image       string          `yaml:"image"`
	Instructor  string          `yaml:"instructor"`
	ComingSoon  bool            `yaml:"coming_soon"`
	Sections    []CourseSection `yaml:"sections"`
	Features    []string        `yaml:"features"`
}

// CourseSection groups lectures in the course curriculum.
type CourseSection struct {
	Title    string    `yaml:"title"`
	Lectures []Lecture `yaml:"lectures"`
}

// Lecture is a single curriculum entry.
type Lecture struct {
	Title    string `yaml:"title"`
	Duration string `yaml:"duration"`
}

func (c Course) RecordYear() int        { return 0 }
func (c Course) RecordCategory() string { return c.Level }
func (c Course) RecordDate() string     { return "" }
func (c Course) SearchText() []string   { return []string{c.Title, c.Description, c.Instructor} }

// LectureCount totals lectures across all sections.
func (c Course) LectureCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Lectures)
	}
	return n
}

// Workshop status values.
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
)

// Workshop is a live (online or on-site) session.
type Workshop struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Date         string `yaml:"date"`
	Time         string `yaml:"time"`
	Mode         string `yaml:"mode"`
	Description  string `yaml:"description"`
	Level        string `yaml:"level"`
	Price        string `yaml:"price"`
	Image        string `yaml:"image"`
	RegisterLink string `yaml:"register_link"`
	Status       string `yaml:"status"`
	Participants int    `yaml:"participants"`
	Duration     string `yaml:"duration"`
}

func (w Workshop) RecordYear() int {
	if t, ok := filter.ParseDate(w.Date); ok {
		return t.Year()
	}
	return 0
}
func (w Workshop) RecordCategory() string { return w.Level }
func (w Workshop) RecordDate() string     { return w.Date }
func (w Workshop) SearchText() []string   { return []string{w.Title, w.Mode} }

// Upcoming reports whether registration may still be open.
func (w Workshop) Upcoming() bool { return w.Status == StatusUpcoming }

// Product is a robot shown on the products page.
type Product struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Details     string   `yaml:"details"`
	Tags        []string `yaml:"tags"`
	Image       string   `yaml:"image"`
	Route       string   `yaml:"route"`
}

// Catalog is the read-only reference data for the site. It is loaded once
// at start-up and never mutated afterwards.
type Catalog struct {
	Achievements []Achievement
	Courses      []Course
	Workshops    []Workshop
	Products     []Product
}

type datasets struct {
	Achievements []Achievement `yaml:"achievements"`
	Courses      []Course      `yaml:"courses"`
	Workshops    []Workshop    `yaml:"workshops"`
	Products     []Product     `yaml:"products"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Achievements: append([]Achievement(nil), fallbackAchievements...),
		Courses:      append([]Course(nil), fallbackCourses...),
		Workshops:    append([]Workshop(nil), fallbackWorkshops...),
		Products:     append([]Product(nil), fallbackProducts...),
	}
}

// Load reads the YAML datasets under dir. Each missing file falls back to the
// built-in data; a file that exists but cannot be parsed is an error.
func Load(dir string) (*Catalog, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultDataDir
	}
	c := Default()

	var ds datasets
	if ok, err := readYAML(filepath.Join(dir, "achievements.yaml"), &ds); err != nil {
		return nil, err
	} else if ok {
		c.Achievements = ds.Achievements
	}
	if ok, err := readYAML(filepath.Join(dir, "courses.yaml"), &ds); err != nil {
		return nil, err
	} else if ok {
		c.Courses = ds.Courses
	}
	if ok, err := readYAML(filepath.Join(dir, "workshops.yaml"), &ds); err != nil {
		return nil, err
	} else if ok {
		c.Workshops = ds.Workshops
	}
	if ok, err := readYAML(filepath.Join(dir, "products.yaml"), &ds); err != nil {
		return nil, err
	} else if ok {
		c.Products = ds.Products
	}
	return c, nil
}

func readYAML(path string, into *datasets) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, into); err != nil {
		return false, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return true, nil
}

// Course looks up a course by id.
func (c *Catalog) Course(id string) (Course, bool) {
	for _, it := range c.Courses {
		if it.ID == id {
			return it, true
		}
	}
	return Course{}, false
}

// Workshop looks up a workshop by id.
func (c *Catalog) Workshop(id string) (Workshop, bool) {
	for _, it := range c.Workshops {
		if it.ID == id {
			return it, true
		}
	}
	return Workshop{}, false
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (Product, bool) {
	for _, it := range c.Products {
		if it.ID == id {
			return it, true
		}
	}
	return Product{}, false
}

// Validate reports data problems: duplicate ids, blank titles, negative prices,
// unknown workshop statuses, and achievement years that disagree with their date.
func (c *Catalog) Validate() error {
	var errs []error
	seen := map[string]struct{}{}
	check := func(kind, id, title string) {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Errorf("%s %q: missing id", kind, title))
			return
		}
		key := kind + "/" + id
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("%s %s: duplicate id", kind, id))
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(title) == "" {
			errs = append(errs, fmt.Errorf("%s %s: missing title", kind, id))
		}
	}
	for _, a := range c.Achievements {
		check("achievement", a.ID, a.Title)
		if t, ok := filter.ParseDate(a.Date); !ok {
			errs = append(errs, fmt.Errorf("achievement %s: unparseable date %q", a.ID, a.Date))
		} else if a.Year != 0 && t.Year() != a.Year {
			errs = append(errs, fmt.Errorf("achievement %s: year %d does not match date %q", a.ID, a.Year, a.Date))
		}
	}
	for _, co := range c.Courses {
		check("course", co.ID, co.Title)
		if co.Price < 0 {
			errs = append(errs, fmt.Errorf("course %s: negative price", co.ID))
		}
	}
	for _, w := range c.Workshops {
		check("workshop", w.ID, w.Title)
		if w.Status != StatusUpcoming && w.Status != StatusCompleted {
			errs = append(errs, fmt.Errorf("workshop %s: unknown status %q", w.ID, w.Status))
		}
	}
	for _, p := range c.Products {
		check("product", p.ID, p.Name)
	}
	return errors.Join(errs...)
}
