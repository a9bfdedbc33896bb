package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// tagPattern finds bracketed placeholders like <bill> inside a canned
// answer template.
var tagPattern = regexp.MustCompile(`<(.*?)>`)

// Resolver computes the substitution value for one tag from current store
// data. Absent backing data resolves to a human-readable placeholder, never
// an error; errors are reserved for store faults.
type Resolver func(ctx context.Context, store Store, userID uint64) (string, error)

// TagRegistry maps tag names to resolvers. Tags without a resolver pass
// through the template literally.
type TagRegistry struct {
	resolvers map[string]Resolver
}

func NewTagRegistry() *TagRegistry {
	r := &TagRegistry{resolvers: make(map[string]Resolver)}

	r.Register("menuitem", resolveMenu)
	r.Register("location", resolveLocation)
	r.Register("bill", resolveBill)
	r.Register("contact", resolveContact)
	r.Register("email", resolveEmail)
	r.Register("name", resolveName)
	r.Register("wifi", resolveWifi)
	r.Register("parking", resolveParking)
	r.Register("service", resolveServices)
	r.Register("platform", resolvePlatforms)
	r.Register("policy", resolvePolicies)
	r.Register("staff", resolveStaff)
	r.Register("amount", resolveAmount)
	r.Register("hours", resolveHours)
	r.Register("delivery", resolveDelivery)
	r.Register("capacity", resolveCapacity)

	return r
}

func (r *TagRegistry) Register(name string, fn Resolver) {
	r.resolvers[name] = fn
}

// Render substitutes every known tag in the template. Each distinct tag is
// resolved exactly once per call and all its occurrences receive the same
// value, so a template repeating <bill> stays consistent.
func (r *TagRegistry) Render(ctx context.Context, store Store, userID uint64, template string) (string, error) {
	response := template
	resolved := make(map[string]struct{})

	for _, match := range tagPattern.FindAllStringSubmatch(template, -1) {
		tag := match[1]
		if _, done := resolved[tag]; done {
			continue
		}
		resolved[tag] = struct{}{}

		fn, ok := r.resolvers[tag]
		if !ok {
			continue
		}

		value, err := fn(ctx, store, userID)
		if err != nil {
			return "", fmt.Errorf("failed to resolve tag %q: %w", tag, err)
		}

		response = strings.ReplaceAll(response, "<"+tag+">", value)
	}

	return response, nil
}

func resolveMenu(ctx context.Context, store Store, _ uint64) (string, error) {
	items, err := store.ListMenuItems(ctx)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "No menu items available.", nil
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s - Rs %g", item.Name, item.Price)
	}

	return strings.Join(lines, "\n"), nil
}

func resolveLocation(ctx context.Context, store Store, _ uint64) (string, error) {
	info, err := store.RestaurantInfo(ctx)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "Location not found.", nil
	}

	return fmt.Sprintf("%s, %s", info.Name, info.Address), nil
}

func resolveBill(ctx context.Context, store Store, userID uint64) (string, error) {
	order, err := store.LatestOrder(ctx, userID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "No bill found.", nil
	}

	return fmt.Sprintf("Your total bill is Rs %g", order.TotalAmount), nil
}

func resolveAmount(ctx context.Context, store Store, userID uint64) (string, error) {
	order, err := store.LatestOrder(ctx, userID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "Amount not found.", nil
	}

	return fmt.Sprintf("Rs %g", order.TotalAmount), nil
}

func resolveContact(ctx context.Context, store Store, _ uint64) (string, error) {
	info, err := store.RestaurantInfo(ctx)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "Contact info not available.", nil
	}

	return info.Contact, nil
}

func resolveEmail(ctx context.Context, store Store, _ uint64) (string, error) {
	info, err := store.RestaurantInfo(ctx)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "Email not available.", nil
	}

	return info.Email, nil
}

func resolveName(ctx context.Context, store Store, _ uint64) (string, error) {
	info, err := store.RestaurantInfo(ctx)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "Name not available.", nil
	}

	return info.Name, nil
}

func resolveWifi(ctx context.Context, store Store, _ uint64) (string, error) {
	info, err := store.RestaurantInfo(ctx)
	if err != nil {
		return "", err
	}
	if info != nil && info.Wifi {
		return "Available", nil
	}

	return "Not Available", nil
}

func resolveParking(ctx context.Context, store Store, _ uint64) (string, error) {
	info, err := store.RestaurantInfo(ctx)
	if err != nil {
		return "", err
	}
	if info != nil && info.Parking {
		return "Available", nil
	}

	return "Not Available", nil
}

func resolveServices(ctx context.Context, store Store, _ uint64) (string, error) {
	services, err := store.EnabledServices(ctx)
	if err != nil {
		return "", err
	}
	if len(services) == 0 {
		return "No active services.", nil
	}

	names := make([]string, len(services))
	for i, s := range services {
		names[i] = capitalize(s.Name)
	}

	return strings.Join(names, ", "), nil
}

func resolvePlatforms(ctx context.Context, store Store, _ uint64) (string, error) {
	platforms, err := store.AvailablePlatforms(ctx)
	if err != nil {
		return "", err
	}
	if len(platforms) == 0 {
		return "No available platforms.", nil
	}

	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = p.Name
	}

	return strings.Join(names, ", "), nil
}

func resolvePolicies(ctx context.Context, store Store, _ uint64) (string, error) {
	policies, err := store.Policies(ctx)
	if err != nil {
		return "", err
	}
	if len(policies) == 0 {
		return "No policies available.", nil
	}

	lines := make([]string, len(policies))
	for i, p := range policies {
		lines[i] = fmt.Sprintf("%s: %s", titleWords(strings.ReplaceAll(p.Name, "_", " ")), p.Value)
	}

	return strings.Join(lines, "\n"), nil
}

func resolveStaff(ctx context.Context, store Store, _ uint64) (string, error) {
	staff, err := store.StaffMembers(ctx)
	if err != nil {
		return "", err
	}
	if len(staff) == 0 {
		return "No staff listed.", nil
	}

	lines := make([]string, len(staff))
	for i, s := range staff {
		lines[i] = fmt.Sprintf("%s: %s", titleWords(s.Role), s.Name)
	}

	return strings.Join(lines, "\n"), nil
}

func resolveHours(ctx context.Context, store Store, _ uint64) (string, error) {
	info, err := store.RestaurantInfo(ctx)
	if err != nil {
		return "", err
	}
	if info == nil || info.OpeningHours == "" {
		return "Opening hours not available.", nil
	}

	hours := fmt.Sprintf("Open %s, closing at %s", info.OpeningHours, info.ClosingTime)
	if info.WeekendHours != "" {
		hours += fmt.Sprintf(". Weekend hours: %s", info.WeekendHours)
	}

	return hours, nil
}

func resolveDelivery(ctx context.Context, store Store, _ uint64) (string, error) {
	info, err := store.RestaurantInfo(ctx)
	if err != nil {
		return "", err
	}
	if info == nil || info.DeliveryTime == "" {
		return "Delivery time not available.", nil
	}

	return info.DeliveryTime, nil
}

func resolveCapacity(ctx context.Context, store Store, _ uint64) (string, error) {
	info, err := store.RestaurantInfo(ctx)
	if err != nil {
		return "", err
	}
	if info == nil || info.Capacity == 0 {
		return "Capacity not available.", nil
	}

	return fmt.Sprintf("%d guests", info.Capacity), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = capitalize(word)
	}

	return strings.Join(words, " ")
}
