package handlers

// Service is a card in the home and services sections.
type Service struct {
	Icon        string
	Title       string
	Description string
}

// Client is a logo in the "trusted by" strip.
type Client struct {
	Name  string
	Logo  string
	Quote string
}

// Services lists the offerings shown on the landing page.
func Services() []Service {
	return []Service{
		{Icon: "bot", Title: "Robotics Training", Description: "ROS 2, SLAM, navigation and computer vision workshops for colleges and teams."},
		{Icon: "cpu", Title: "Custom Robot Development", Description: "From specification to working prototype, built around your use case."},
		{Icon: "brain", Title: "AI for Robots", Description: "Generative AI and perception pipelines running on real hardware."},
		{Icon: "factory", Title: "Industrial Automation", Description: "Offline programming and cell simulation with RoboDK."},
	}
}

// Clients lists institutions featured on the landing page.
func Clients() []Client {
	return []Client{
		{Name: "VIT Chennai", Logo: "/assets/clients/vit.png", Quote: "Hands-on ROS 2 sessions our students still talk about."},
		{Name: "SRM Institute", Logo: "/assets/clients/srm.png", Quote: "Clear, practical and well paced."},
		{Name: "Anna University", Logo: "/assets/clients/anna.png", Quote: "A strong bridge between simulation and hardware."},
		{Name: "PSG Tech", Logo: "/assets/clients/psg.png", Quote: "Great mentoring for our final-year projects."},
	}
}
