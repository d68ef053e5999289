package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/lmapi"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/validation"
)

// deviceStatusMap translates device status names to the numeric
// hostStatus codes the LogicMonitor filter syntax expects.
var deviceStatusMap = map[string]int{
	"normal":         0,
	"dead":           1,
	"dead-collector": 2,
	"unmonitored":    3,
	"disabled":       4,
}

// ListDevicesParams are the arguments for the get_devices tool.
type ListDevicesParams struct {
	GroupID    int
	NameFilter string
	Status     string
	Filter     string
	Limit      int
	Offset     int
}

// ListDevices lists devices with filters built from the named
// parameters, or a raw filter expression for advanced queries.
func (s *Set) ListDevices(ctx context.Context, p ListDevicesParams) (map[string]any, error) {
	query := map[string]string{
		"size":   strconv.Itoa(pageSize(p.Limit)),
		"offset": strconv.Itoa(p.Offset),
	}

	var note string
	if p.Filter != "" {
		query["filter"] = p.Filter
	} else {
		f := validation.NewFilter()
		if p.GroupID > 0 {
			f.Raw(fmt.Sprintf("hostGroupIds~%d", p.GroupID))
		}
		if p.NameFilter != "" {
			f.Contains("displayName", p.NameFilter)
		}
		if code, ok := deviceStatusMap[strings.ToLower(p.Status)]; ok {
			f.Eq("hostStatus", code)
		}
		if !f.Empty() {
			query["filter"] = f.String()
		}
		if f.Modified() {
			note = validation.WildcardNote
		}
	}

	resp, err := lmapi.Get[listEnvelope](s.client, ctx, "/device/devices", lmapi.WithQuery(query))
	if err != nil {
		return nil, err
	}

	devices := make([]map[string]any, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		devices = append(devices, map[string]any{
			"id":           item["id"],
			"name":         item["displayName"],
			"status":       item["hostStatus"],
			"collector_id": item["currentCollectorId"],
		})
	}

	result := map[string]any{
		"total":    resp.Data.Total,
		"count":    len(devices),
		"offset":   p.Offset,
		"has_more": p.Offset+len(devices) < resp.Data.Total,
		"devices":  devices,
	}
	if note != "" {
		result["note"] = note
	}
	return result, nil
}

// GetDevice fetches the full device record.
func (s *Set) GetDevice(ctx context.Context, deviceID int) (map[string]any, error) {
	if err := validation.PositiveID("device_id", deviceID); err != nil {
		return nil, err
	}
	resp, err := lmapi.Get[map[string]any](s.client, ctx, fmt.Sprintf("/device/devices/%d", deviceID))
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ListDeviceGroups lists device groups, optionally scoped to a parent
// group or filtered by name.
func (s *Set) ListDeviceGroups(ctx context.Context, parentID int, nameFilter string, limit int) (map[string]any, error) {
	query := map[string]string{"size": strconv.Itoa(pageSize(limit))}

	var note string
	f := validation.NewFilter()
	if parentID > 0 {
		f.Eq("parentId", parentID)
	}
	if nameFilter != "" {
		f.Contains("name", nameFilter)
	}
	if !f.Empty() {
		query["filter"] = f.String()
	}
	if f.Modified() {
		note = validation.WildcardNote
	}

	resp, err := lmapi.Get[listEnvelope](s.client, ctx, "/device/groups", lmapi.WithQuery(query))
	if err != nil {
		return nil, err
	}

	groups := make([]map[string]any, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		groups = append(groups, map[string]any{
			"id":           item["id"],
			"name":         item["name"],
			"device_count": item["numOfHosts"],
		})
	}

	result := map[string]any{
		"total":  resp.Data.Total,
		"count":  len(groups),
		"groups": groups,
	}
	if note != "" {
		result["note"] = note
	}
	return result, nil
}

// CreateDeviceParams are the arguments for the create_device tool.
type CreateDeviceParams struct {
	Name                 string            `json:"name" validate:"required"`
	DisplayName          string            `json:"display_name" validate:"required"`
	PreferredCollectorID int               `json:"preferred_collector_id" validate:"required,gt=0"`
	HostGroupIDs         []int             `json:"host_group_ids"`
	Description          string            `json:"description"`
	CustomProperties     map[string]string `json:"custom_properties"`
}

// CreateDevice adds a new device to monitoring.
func (s *Set) CreateDevice(ctx context.Context, p CreateDeviceParams) (map[string]any, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}

	body := map[string]any{
		"name":                 p.Name,
		"displayName":          p.DisplayName,
		"preferredCollectorId": p.PreferredCollectorID,
	}
	if len(p.HostGroupIDs) > 0 {
		body["hostGroupIds"] = joinIDs(p.HostGroupIDs)
	}
	if p.Description != "" {
		body["description"] = p.Description
	}
	if len(p.CustomProperties) > 0 {
		body["customProperties"] = propertyList(p.CustomProperties)
	}

	resp, err := lmapi.Post[map[string]any](s.client, ctx, "/device/devices", body)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"message": "Device created successfully",
		"device": map[string]any{
			"id":           resp.Data["id"],
			"name":         resp.Data["displayName"],
			"host":         resp.Data["name"],
			"collector_id": resp.Data["currentCollectorId"],
		},
	}, nil
}

// UpdateDeviceParams are the arguments for the update_device tool.
// Only non-nil fields are sent, so unset fields stay untouched.
type UpdateDeviceParams struct {
	DisplayName          *string
	Description          *string
	HostGroupIDs         []int
	PreferredCollectorID *int
	DisableAlerting      *bool
	CustomProperties     map[string]string
}

// UpdateDevice patches an existing device. At least one field must be
// provided.
func (s *Set) UpdateDevice(ctx context.Context, deviceID int, p UpdateDeviceParams) (map[string]any, error) {
	if err := validation.PositiveID("device_id", deviceID); err != nil {
		return nil, err
	}

	body := map[string]any{}
	if p.DisplayName != nil {
		body["displayName"] = *p.DisplayName
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.HostGroupIDs != nil {
		body["hostGroupIds"] = joinIDs(p.HostGroupIDs)
	}
	if p.PreferredCollectorID != nil {
		body["preferredCollectorId"] = *p.PreferredCollectorID
	}
	if p.DisableAlerting != nil {
		body["disableAlerting"] = *p.DisableAlerting
	}
	if p.CustomProperties != nil {
		body["customProperties"] = propertyList(p.CustomProperties)
	}
	if len(body) == 0 {
		return nil, errors.InvalidInput("No updates provided").
			WithSuggestion("Provide at least one field to change.")
	}

	resp, err := lmapi.Patch[map[string]any](s.client, ctx, fmt.Sprintf("/device/devices/%d", deviceID), body)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"message": "Device updated successfully",
		"device": map[string]any{
			"id":          resp.Data["id"],
			"name":        resp.Data["displayName"],
			"description": resp.Data["description"],
		},
	}, nil
}

// DeleteDevice removes a device. Soft deletes go to Recently Deleted
// and are recoverable; hard deletes are permanent.
func (s *Set) DeleteDevice(ctx context.Context, deviceID int, hard bool) (map[string]any, error) {
	if err := validation.PositiveID("device_id", deviceID); err != nil {
		return nil, err
	}

	// Fetch the name first so the confirmation is meaningful.
	name := fmt.Sprintf("ID:%d", deviceID)
	if current, err := lmapi.Get[map[string]any](s.client, ctx, fmt.Sprintf("/device/devices/%d", deviceID)); err == nil {
		if dn, ok := current.Data["displayName"].(string); ok && dn != "" {
			name = dn
		} else if n, ok := current.Data["name"].(string); ok && n != "" {
			name = n
		}
	}

	var opts []lmapi.RequestOption
	if hard {
		opts = append(opts, lmapi.WithQueryParam("deleteHard", "true"))
	}
	if _, err := lmapi.Delete[map[string]any](s.client, ctx, fmt.Sprintf("/device/devices/%d", deviceID), opts...); err != nil {
		return nil, err
	}

	return map[string]any{
		"success":     true,
		"message":     fmt.Sprintf("Device '%s' deleted", name),
		"device_id":   deviceID,
		"hard_delete": hard,
		"recoverable": !hard,
	}, nil
}

// joinIDs renders group IDs the way the device API wants them, as a
// comma-separated string.
func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// propertyList converts a property map to the name/value list shape
// the device API uses.
func propertyList(props map[string]string) []map[string]string {
	out := make([]map[string]string, 0, len(props))
	for k, v := range props {
		out = append(out, map[string]string{"name": k, "value": v})
	}
	return out
}

// deviceDefinitions returns the registry definitions for device tools.
func (s *Set) deviceDefinitions() []Definition {
	return []Definition{
		{
			Name:        "get_devices",
			Description: "List devices with optional group, name, and status filters.",
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.ListDevices(ctx, ListDevicesParams{
					GroupID:    args.Int("group_id", 0),
					NameFilter: args.String("name_filter"),
					Status:     args.String("status"),
					Filter:     args.String("filter"),
					Limit:      args.Int("limit", defaultPageSize),
					Offset:     args.Int("offset", 0),
				})
			},
		},
		{
			Name:        "get_device",
			Description: "Get detailed information about a specific device.",
			Handler: func(ctx context.Context, args Args) (any, error) {
				id, err := args.requireInt("device_id")
				if err != nil {
					return nil, err
				}
				return s.GetDevice(ctx, id)
			},
		},
		{
			Name:        "get_device_groups",
			Description: "List device groups, optionally scoped to a parent group.",
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.ListDeviceGroups(ctx,
					args.Int("parent_id", 0),
					args.String("name_filter"),
					args.Int("limit", defaultPageSize))
			},
		},
		{
			Name:        "create_device",
			Description: "Add a new device to monitoring.",
			Write:       true,
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.CreateDevice(ctx, CreateDeviceParams{
					Name:                 args.String("name"),
					DisplayName:          args.String("display_name"),
					PreferredCollectorID: args.Int("preferred_collector_id", 0),
					HostGroupIDs:         args.IntSlice("host_group_ids"),
					Description:          args.String("description"),
					CustomProperties:     args.StringMap("custom_properties"),
				})
			},
		},
		{
			Name:        "update_device",
			Description: "Update fields on an existing device.",
			Write:       true,
			Handler: func(ctx context.Context, args Args) (any, error) {
				id, err := args.requireInt("device_id")
				if err != nil {
					return nil, err
				}
				p := UpdateDeviceParams{CustomProperties: args.StringMap("custom_properties")}
				if v, ok := args["display_name"].(string); ok {
					p.DisplayName = &v
				}
				if v, ok := args["description"].(string); ok {
					p.Description = &v
				}
				if _, ok := args["host_group_ids"]; ok {
					p.HostGroupIDs = args.IntSlice("host_group_ids")
				}
				if _, ok := args["preferred_collector_id"]; ok {
					v := args.Int("preferred_collector_id", 0)
					p.PreferredCollectorID = &v
				}
				p.DisableAlerting = args.BoolPtr("disable_alerting")
				return s.UpdateDevice(ctx, id, p)
			},
		},
		{
			Name:        "delete_device",
			Description: "Delete a device (soft delete by default, recoverable).",
			Write:       true,
			Handler: func(ctx context.Context, args Args) (any, error) {
				id, err := args.requireInt("device_id")
				if err != nil {
					return nil, err
				}
				return s.DeleteDevice(ctx, id, args.Bool("delete_hard"))
			},
		},
	}
}
