package catalog

var fallbackAchievements = []Achievement{
	{
		ID:       "ros2-urdf-slam-2025",
		Title:    "ROS 2: Creating URDF, ROS2 Control & SLAM",
		Date:     "21st May 2025",
		Location: "Online",
		Category: "ROS",
		Year:     2025,
		Images:   []string{"/assets/achievements/ros2-urdf-slam-1.jpg", "/assets/achievements/ros2-urdf-slam-2.jpg"},
	},
	{
		ID:       "genai-bootcamp-srm",
		Title:    "Generative AI Bootcamp",
		Date:     "14th March 2025",
		Location: "SRM Institute of Science and Technology, Chennai",
		Category: "GEN AI",
		Year:     2025,
		Images:   []string{"/assets/achievements/genai-srm.jpg"},
	},
	{
		ID:       "robodk-industrial-sathyabama",
		Title:    "RoboDK Industrial Robot Programming",
		Date:     "8th February 2025",
		Location: "Sathyabama University, Chennai",
		Category: "RoboDK",
		Year:     2025,
		Images:   []string{"/assets/achievements/robodk-sathyabama.jpg"},
	},
	{
		ID:       "amr-build-vit",
		Title:    "Autonomous Mobile Robot Build Camp",
		Date:     "2nd December 2024",
		Location: "VIT Chennai",
		Category: "Robotics",
		Year:     2024,
		Images:   []string{"/assets/achievements/amr-vit-1.jpg", "/assets/achievements/amr-vit-2.jpg"},
	},
	{
		ID:       "aiml-vision-anna",
		Title:    "AIML for Robot Vision",
		Date:     "23rd October 2024",
		Location: "Anna University, Guindy",
		Category: "AIML",
		Year:     2024,
		Images:   []string{"/assets/achievements/aiml-anna.jpg"},
	},
	{
		ID:       "arvr-digital-twin-psg",
		Title:    "AR VR Digital Twins for Robotics",
		Date:     "23rd October 2024",
		Location: "PSG College of Technology, Coimbatore",
		Category: "AR VR",
		Year:     2024,
		Images:   []string{"/assets/achievements/arvr-psg.jpg"},
	},
	{
		ID:       "ros2-nav2-rec",
		Title:    "ROS2 Navigation Stack Hands-on",
		Date:     "17th August 2024",
		Location: "Rajalakshmi Engineering College, Chennai",
		Category: "ROS",
		Year:     2024,
		Images:   []string{"/assets/achievements/nav2-rec.jpg"},
	},
	{
		ID:       "final-year-mentoring-2024",
		Title:    "Final Year Project Mentoring",
		Date:     "1st April 2024",
		Location: "Online",
		Category: "Project Mentoring",
		Year:     2024,
		Images:   []string{"/assets/achievements/mentoring-2024.jpg"},
	},
	{
		ID:       "line-follower-school",
		Title:    "Line Follower Robotics for Schools",
		Date:     "9th December 2023",
		Location: "Velammal Matriculation School, Chennai",
		Category: "Robotics",
		Year:     2023,
		Images:   []string{"/assets/achievements/line-follower.jpg"},
	},
	{
		ID:       "ros-intro-saveetha",
		Title:    "Introduction to ROS",
		Date:     "22nd September 2023",
		Location: "Saveetha Engineering College, Chennai",
		Category: "ROS",
		Year:     2023,
		Images:   []string{"/assets/achievements/ros-saveetha.jpg"},
	},
	{
		ID:       "iot-robotics-kct",
		Title:    "IoT Robotics Weekend",
		Date:     "5th August 2023",
		Location: "Kumaraguru College of Technology, Coimbatore",
		Category: "Robotics",
		Year:     2023,
		Images:   []string{"/assets/achievements/iot-kct.jpg"},
	},
	{
		ID:       "aiml-basics-ssn",
		Title:    "Machine Learning Basics for Robotics",
		Date:     "15th July 2023",
		Location: "SSN College of Engineering, Chennai",
		Category: "AIML",
		Year:     2023,
		Images:   []string{"/assets/achievements/aiml-ssn.jpg"},
	},
	{
		ID:       "robotics-expo-2022",
		Title:    "Robotics Expo Demonstration",
		Date:     "19th November 2022",
		Location: "Chennai Trade Centre",
		Category: "Robotics",
		Year:     2022,
		Images:   []string{"/assets/achievements/expo-2022.jpg"},
	},
}

var fallbackCourses = []Course{
	{
		ID:          "ros2-beginner",
		Title:       "ROS2 for Beginners",
		Description: "Start your journey with ROS2. Learn the fundamentals of Robot Operating System 2.",
		Level:       "Beginner",
		Duration:    "20 hours",
		Students:    1200,
		Rating:      4.8,
		Price:       2999,
		Image:       "https://images.pexels.com/photos/2599244/pexels-photo-2599244.jpeg",
		Instructor:  "Karthikesh J G",
		Sections: []CourseSection{
			{
				Title: "Introduction to ROS2",
				Lectures: []Lecture{
					{Title: "What is ROS2?", Duration: "10:00"},
					{Title: "Setting up your development environment", Duration: "15:00"},
					{Title: "Understanding ROS2 concepts", Duration: "20:00"},
				},
			},
			{
				Title: "Basic Concepts",
				Lectures: []Lecture{
					{Title: "Nodes and Topics", Duration: "25:00"},
					{Title: "Publishers and Subscribers", Duration: "20:00"},
					{Title: "Services and Actions", Duration: "30:00"},
				},
			},
			{
				Title: "Practical Implementation",
				Lectures: []Lecture{
					{Title: "Creating your first ROS2 package", Duration: "45:00"},
					{Title: "Building and running nodes", Duration: "35:00"},
					{Title: "Debugging ROS2 applications", Duration: "40:00"},
				},
			},
		},
		Features: []string{
			"Lifetime access to course materials",
			"Hands-on projects and assignments",
			"Certificate of completion",
			"Access to community forum",
			"Regular content updates",
			"Direct instructor support",
		},
	},
	{
		ID:          "advanced-robotics",
		Title:       "Advanced Robotics",
		Description: "Master complex robotics concepts and applications.",
		Level:       "Advanced",
		Duration:    "35 hours",
		Price:       5999,
		Image:       "/assets/courses/advanced-robotics.jpg",
		Instructor:  "Karthikesh J G",
		ComingSoon:  true,
	},
	{
		ID:          "hands-on-projects",
		Title:       "Hands-on Projects",
		Description: "Build real-world robotics projects from scratch.",
		Level:       "Intermediate",
		Duration:    "25 hours",
		Price:       3999,
		Image:       "/assets/courses/hands-on-projects.jpg",
		Instructor:  "Karthikesh J G",
		ComingSoon:  true,
	},
}

var fallbackWorkshops = []Workshop{
	{
		ID:           "ros2-urdf-slam",
		Title:        "ROS 2: Creating URDF, ROS2 CONTROL & SLAM",
		Date:         "May 21, 2025",
		Time:         "10:00 AM - 4:00 PM",
		Mode:         "Online",
		Description:  "Comprehensive workshop covering URDF creation, ROS2 Control implementation, and SLAM techniques for autonomous navigation.",
		Level:        "Intermediate",
		Image:        "/assets/workshop1.png",
		Status:       StatusCompleted,
		Participants: 150,
		Duration:     "6 hours",
	},
	{
		ID:           "ros2-basics-roadmap",
		Title:        "ROS 2: Basics, Roadmap to Pro",
		Date:         "June 29, 2025",
		Time:         "9:30 AM - 12:00 PM",
		Mode:         "Online",
		Description:  "Dive into ROS2 Basics and Complete Road map for ROS2 Beginner to Pro",
		Level:        "Intermediate",
		Price:        "₹150",
		Image:        "/assets/workshop.png",
		RegisterLink: "https://unstop.com/o/frM5Agm?utm_medium=Share&utm_source=shortUrl",
		Status:       StatusUpcoming,
		Duration:     "2.5 hours",
	},
}

var fallbackProducts = []Product{
	{
		ID:          "bumpy",
		Name:        "BUMPY",
		Description: "Autonomous Mobile Robot",
		Details:     "Advanced autonomous mobile robot designed for educational and research purposes. Features ROS2 integration, advanced navigation, and modular design perfect for learning and development.",
		Tags:        []string{"ROS2 Ready", "SLAM Navigation", "Modular Design", "Educational Platform"},
		Image:       "/assets/bumpy.png",
		Route:       "/products/bumpy",
	},
	{
		ID:          "customrobot",
		Name:        "Custom AMR",
		Description: "Customized Robots",
		Details:     "Tailored autonomous mobile robots designed specifically for your unique requirements. From industrial automation to specialized research applications.",
		Tags:        []string{"Custom Design", "Industry Specific", "Scalable Solution", "Full Support"},
		Image:       "/assets/amr.png",
		Route:       "/products/customrobot",
	},
}
