package model

// Wire types for the Pterodactyl application API.

type PteroError struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

type PteroUserAttributes struct {
	ID       int    `json:"id"`
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type PteroUserResponse struct {
	Object     string              `json:"object"`
	Attributes PteroUserAttributes `json:"attributes"`
	Errors     []PteroError        `json:"errors"`
}

type PteroServerAttributes struct {
	ID         int    `json:"id"`
	Identifier string `json:"identifier"`
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
}

type PteroServerResponse struct {
	Object     string                `json:"object"`
	Attributes PteroServerAttributes `json:"attributes"`
	Errors     []PteroError          `json:"errors"`
}

type PteroCreateUserRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Language  string `json:"language"`
	Password  string `json:"password"`
	RootAdmin bool   `json:"root_admin"`
}

type PteroLimits struct {
	Memory int `json:"memory"`
	Swap   int `json:"swap"`
	Disk   int `json:"disk"`
	IO     int `json:"io"`
	CPU    int `json:"cpu"`
}

type PteroFeatureLimits struct {
	Databases   int `json:"databases"`
	Backups     int `json:"backups"`
	Allocations int `json:"allocations"`
}

type PteroDeploy struct {
	Locations   []int    `json:"locations"`
	DedicatedIP bool     `json:"dedicated_ip"`
	PortRange   []string `json:"port_range"`
}

type PteroCreateServerRequest struct {
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	User          int                `json:"user"`
	Egg           int                `json:"egg"`
	DockerImage   string             `json:"docker_image"`
	Startup       string             `json:"startup"`
	Environment   map[string]string  `json:"environment"`
	Limits        PteroLimits        `json:"limits"`
	FeatureLimits PteroFeatureLimits `json:"feature_limits"`
	Deploy        PteroDeploy        `json:"deploy"`
}
