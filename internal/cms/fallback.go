package cms

import "strings"

// built-in copies used when content/pages has no file for a slug.
var fallbackPages = map[string]string{
	"about": `---
title: About Karthikesh Robotics
summary: Chennai-based robotics company building autonomous systems and training the next generation of roboticists.
hero: /assets/pages/about/hero.jpg
---
Karthikesh Robotics Private Limited designs autonomous robots and teaches the
skills needed to build them. We started with ROS workshops for engineering
colleges and now run courses, custom robot builds and mentoring programmes
from our lab in Pammal, Chennai.

## What drives us

- Hands-on learning with real hardware
- Open tooling built on ROS 2, Gazebo and Nav2
- Industry projects that students can take from simulation to the floor

## Our lab

The lab hosts mobile robot platforms, manipulators and a simulation cluster
used in every workshop and course.
`,
	"services": `---
title: Services
summary: Robotics training, custom robot development, project mentoring and industrial automation consulting.
---
## Robotics training

Workshops and semester-long programmes on ROS 2, SLAM, navigation, computer
vision and generative AI for robots.

## Custom robot development

From specification to a working prototype. Request a quote from the
[custom robot page](/products/customrobot).

## Project mentoring

Guidance for final-year and research projects, including simulation setup,
hardware selection and reviews.

## Industrial automation

Offline programming with RoboDK, cell simulation and integration support.
`,
	"careers": `---
title: Careers
summary: Join a small team building robots and teaching robotics across India.
---
We hire engineers and trainers who enjoy explaining what they build.

## Open roles

- **Robotics Software Intern** (ROS 2, C++ or Python)
- **Robotics Trainer** (workshops at partner colleges)
- **Embedded Systems Engineer** (motor control, sensors)

Send your résumé to [careers@karthikeshrobotics.in](mailto:careers@karthikeshrobotics.in)
with the role in the subject line.
`,
	"bumpy": `---
title: Build Bumpy
summary: Step-by-step guide to assembling Bumpy, our differential-drive learning robot.
hero: /assets/products/bumpy.png
---
## 1. Chassis

Mount both geared motors on the base plate and fix the caster wheel at the rear.

## 2. Electronics

Fit the motor driver and the controller board. Route the battery leads through
the switch before connecting the driver.

## 3. Sensors

Attach the ultrasonic sensor on the front bracket and the IR pair underneath
for line following.

## 4. Firmware

Flash the starter firmware, then drive Bumpy from the ROS 2 teleop node.

## 5. Calibrate

Run the wheel calibration routine and tune the PID gains until Bumpy tracks a
straight line.
`,
}

// FallbackSlugs lists the slugs with built-in content.
func FallbackSlugs() []string {
	return []string{"about", "bumpy", "careers", "services"}
}

func fallbackPage(slug, lang string) (Page, error) {
	raw, ok := fallbackPages[slug]
	if !ok {
		return Page{}, ErrNotFound
	}
	return parseMarkdown(slug, lang, strings.TrimSpace(raw)+"\n")
}
