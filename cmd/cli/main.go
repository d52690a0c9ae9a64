package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "staff":
		handleStaff(args)
	case "feedback":
		handleFeedback(args)
	case "bookings":
		handleBookings(args)
	case "profile":
		handleProfile(args)
	case "dashboard":
		showDashboard()
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hoteldesk auth <login|logout|who>")
		return
	}

	switch args[0] {
	case "login":
		loginUser(args[1:])
	case "logout":
		logoutUser()
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", args[0])
	}
}

func handleStaff(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hoteldesk staff <list|delete>")
		return
	}

	switch args[0] {
	case "list":
		listStaff(args[1:])
	case "delete":
		deleteStaff(args[1:])
	default:
		fmt.Printf("unknown staff command: %s\n", args[0])
	}
}

func handleFeedback(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hoteldesk feedback <list>")
		return
	}

	switch args[0] {
	case "list":
		listFeedback(args[1:])
	default:
		fmt.Printf("unknown feedback command: %s\n", args[0])
	}
}

func handleBookings(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hoteldesk bookings <list|rooms>")
		return
	}

	switch args[0] {
	case "list":
		listBookings(args[1:])
	case "rooms":
		availableRooms(args[1:])
	default:
		fmt.Printf("unknown bookings command: %s\n", args[0])
	}
}

func handleProfile(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hoteldesk profile <show|update>")
		return
	}

	switch args[0] {
	case "show":
		showProfile()
	case "update":
		updateProfile(args[1:])
	default:
		fmt.Printf("unknown profile command: %s\n", args[0])
	}
}

// Auth commands
func loginUser(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *username == "" || *password == "" {
		fmt.Println("Error: username and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"username": *username, "password": *password}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/login", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		if token, ok := result["token"].(string); ok {
			saveToken(token)
			fmt.Printf("✓ Logged in as: %s (%v)\n", *username, result["role"])
		}
	} else {
		fmt.Printf("✗ Login failed: %v\n", result)
	}
}

func logoutUser() {
	req, _ := http.NewRequest("POST", getAPIURL()+"/logout", nil)
	addAuthHeader(req)
	if resp, err := http.DefaultClient.Do(req); err == nil {
		resp.Body.Close()
	}
	os.Remove(tokenFile())
	fmt.Println("✓ Logged out")
}

func whoAmI() {
	token := loadToken()
	if token == "" {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("✓ Logged in (token: %s...)\n", token[:20])
}

// Staff commands
func listStaff(args []string) {
	query := parseListFlags("staff list", args, "position")

	result, ok := getPage("/staff", query)
	if !ok {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPOSITION\tEMAIL\tPHONE")
	for _, item := range result.Items {
		fmt.Fprintf(w, "%v\t%v %v\t%v\t%v\t%v\n",
			item["UserID"], item["FirstName"], item["LastName"],
			item["Position"], item["Email"], item["PhoneNumber"])
	}
	w.Flush()
	fmt.Println(result.RangeLabel)
}

func deleteStaff(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hoteldesk staff delete <user-id>")
		return
	}

	req, _ := http.NewRequest("DELETE", getAPIURL()+"/staff/"+args[0], nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Printf("✓ Staff %s deleted\n", args[0])
	} else {
		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		fmt.Printf("✗ Delete failed: %v\n", result)
	}
}

// Feedback commands
func listFeedback(args []string) {
	query := parseListFlags("feedback list", args, "rating")

	result, ok := getPage("/feedback", query)
	if !ok {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGUEST\tRATING\tCOMMENTS")
	for _, item := range result.Items {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n",
			item["FeedbackID"], item["CustomerName"], item["Rating"], item["Comments"])
	}
	w.Flush()
	fmt.Println(result.RangeLabel)
}

// Booking commands
func listBookings(args []string) {
	query := parseListFlags("bookings list", args, "status")

	result, ok := getPage("/bookings", query)
	if !ok {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGUEST\tROOM\tCHECK-IN\tCHECK-OUT\tSTATUS")
	for _, item := range result.Items {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
			item["BookingID"], item["CustomerName"], item["RoomNumber"],
			item["CheckInDate"], item["CheckOutDate"], item["Status"])
	}
	w.Flush()
	fmt.Println(result.RangeLabel)
}

func availableRooms(args []string) {
	fs := flag.NewFlagSet("bookings rooms", flag.ExitOnError)
	checkIn := fs.String("check-in", "", "check-in date (YYYY-MM-DD)")
	checkOut := fs.String("check-out", "", "check-out date (YYYY-MM-DD)")

	fs.Parse(args)

	if *checkIn == "" || *checkOut == "" {
		fmt.Println("Error: check-in and check-out dates are required")
		fs.PrintDefaults()
		return
	}

	query := url.Values{}
	query.Set("check_in", *checkIn)
	query.Set("check_out", *checkOut)

	req, _ := http.NewRequest("GET", getAPIURL()+"/rooms/available?"+query.Encode(), nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Rooms []map[string]interface{} `json:"rooms"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROOM\tTYPE\tFLOOR\tPRICE")
	for _, rm := range result.Rooms {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n",
			rm["RoomNumber"], rm["Type"], rm["Floor"], rm["Price"])
	}
	w.Flush()
}

// Profile commands
func showProfile() {
	req, _ := http.NewRequest("GET", getAPIURL()+"/profile", nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode != 200 {
		fmt.Printf("✗ Failed to load profile: %v\n", result)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Username:\t%v\n", result["username"])
	fmt.Fprintf(w, "Name:\t%v\n", result["full_name"])
	fmt.Fprintf(w, "Role:\t%v\n", result["role"])
	fmt.Fprintf(w, "Position:\t%v\n", result["position"])
	fmt.Fprintf(w, "Email:\t%v\n", result["email"])
	fmt.Fprintf(w, "Phone:\t%v\n", result["phone_number"])
	w.Flush()
}

func updateProfile(args []string) {
	fs := flag.NewFlagSet("profile update", flag.ExitOnError)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "new password (optional)")
	confirm := fs.String("confirm-password", "", "confirm new password")

	fs.Parse(args)

	payload := map[string]string{
		"first_name":   *firstName,
		"last_name":    *lastName,
		"email":        *email,
		"phone_number": *phone,
	}
	if *password != "" {
		payload["password"] = *password
		payload["confirm_password"] = *confirm
	}

	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("PUT", getAPIURL()+"/profile", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		fmt.Printf("✓ Profile updated: %v\n", result["full_name"])
	} else {
		fmt.Printf("✗ Update failed: %v\n", result)
	}
}

// Dashboard command
func showDashboard() {
	req, _ := http.NewRequest("GET", getAPIURL()+"/dashboard", nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode != 200 {
		fmt.Printf("✗ Failed to load dashboard: %v\n", result)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Checked-in guests:\t%v\n", result["checked_in_guests"])
	fmt.Fprintf(w, "Expected check-ins:\t%v\n", result["expected_check_ins"])
	fmt.Fprintf(w, "Expected check-outs:\t%v\n", result["expected_check_outs"])
	fmt.Fprintf(w, "New bookings today:\t%v\n", result["new_bookings_today"])
	if revenue, ok := result["revenue_today"]; ok {
		fmt.Fprintf(w, "Revenue today:\t%v\n", revenue)
	}
	w.Flush()
}

// Helper functions

type pageResult struct {
	Items      []map[string]interface{} `json:"items"`
	RangeLabel string                   `json:"range_label"`
}

func parseListFlags(name string, args []string, categoryName string) url.Values {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	search := fs.String("search", "", "free-text search")
	category := fs.String(categoryName, "", categoryName+" filter")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")

	fs.Parse(args)

	query := url.Values{}
	if *search != "" {
		query.Set("search", *search)
	}
	if *category != "" {
		query.Set("category", *category)
	}
	query.Set("page", strconv.Itoa(*page))
	query.Set("page_size", strconv.Itoa(*size))
	return query
}

func getPage(path string, query url.Values) (pageResult, bool) {
	req, _ := http.NewRequest("GET", getAPIURL()+path+"?"+query.Encode(), nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return pageResult{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		fmt.Printf("✗ Request failed: %v\n", result)
		return pageResult{}, false
	}

	var result pageResult
	json.NewDecoder(resp.Body).Decode(&result)
	return result, true
}

func getAPIURL() string {
	if url := os.Getenv("HOTELDESK_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.hoteldesk/token"
}

func saveToken(token string) error {
	os.MkdirAll(os.Getenv("HOME")+"/.hoteldesk", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	token := loadToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func printUsage() {
	fmt.Print(`HotelDesk CLI

Usage:
  hoteldesk <command> [options]

Commands:
  auth       Authentication (login, logout, who)
  staff      Staff directory (list, delete)
  feedback   Guest feedback (list)
  bookings   Bookings (list, rooms)
  profile    Your profile (show, update)
  dashboard  Front-desk dashboard
  help       Show this help message

Environment Variables:
  HOTELDESK_API    API endpoint (default: http://localhost:8080/api)

Examples:
  hoteldesk auth login -username jdoe -password secret
  hoteldesk staff list -search doe -position Receptionist -page 2 -size 25
  hoteldesk bookings rooms -check-in 2026-09-05 -check-out 2026-09-08
  hoteldesk profile update -first-name Jane -last-name Doe -email jane@hotel.test -phone "+1 (555) 010-4477"
`)
}
