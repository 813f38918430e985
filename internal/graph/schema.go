package graph

import (
	"errors"

	"github.com/graphql-go/graphql"

	"eventhub/internal/event"
	"eventhub/internal/location"
	"eventhub/internal/participant"
	"eventhub/internal/store"
	"eventhub/internal/user"
	"eventhub/middleware"
)

// NewSchema builds the executable schema. Required-field validation is
// the schema's job (NonNull input coercion); resolvers add no semantic
// checks beyond id lookups.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"desc": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lat":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"lng":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	participantType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Participant",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"user_id":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"event_id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	eventType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"desc":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"date":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"from":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"to":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"location_id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"user_id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},

			// Relations are computed per query by linear scan, never
			// cached. A dangling foreign key resolves to null, so the
			// fields are nullable even though writes never produce a
			// missing id on purpose.
			"user": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ev, ok := asEvent(p.Source)
					if !ok {
						return nil, nil
					}
					u, err := r.Users.Get(ev.UserID)
					if errors.Is(err, store.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return u, nil
				},
			},
			"location": &graphql.Field{
				Type: locationType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ev, ok := asEvent(p.Source)
					if !ok {
						return nil, nil
					}
					l, err := r.Locations.Get(ev.LocationID)
					if errors.Is(err, store.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return l, nil
				},
			},
			"participants": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(participantType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ev, ok := asEvent(p.Source)
					if !ok {
						return nil, nil
					}
					return r.Participants.ListByEvent(ev.ID), nil
				},
			},
		},
	})

	deleteAllType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DeleteAllOutput",
		Fields: graphql.Fields{
			"count": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Users.List(), nil
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					u, err := r.Users.Get(id)
					if err != nil {
						return nil, mapErr(err, "user", id)
					}
					return u, nil
				},
			},

			"events": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Events.List(), nil
				},
			},
			"event": &graphql.Field{
				Type: graphql.NewNonNull(eventType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					e, err := r.Events.Get(id)
					if err != nil {
						return nil, mapErr(err, "event", id)
					}
					return e, nil
				},
			},

			"locations": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(locationType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Locations.List(), nil
				},
			},
			"location": &graphql.Field{
				Type: graphql.NewNonNull(locationType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					l, err := r.Locations.Get(id)
					if err != nil {
						return nil, mapErr(err, "location", id)
					}
					return l, nil
				},
			},

			"participants": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(participantType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Participants.List(), nil
				},
			},
			"participant": &graphql.Field{
				Type: graphql.NewNonNull(participantType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					pt, err := r.Participants.Get(id)
					if err != nil {
						return nil, mapErr(err, "participant", id)
					}
					return pt, nil
				},
			},
		},
	})

	// Input types. Add* inputs make every user-settable field required;
	// Update* inputs make every field optional. Neither carries id.
	addUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	updateUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	addEventInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddEventInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"desc":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"from":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"to":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"location_id": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"user_id":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	updateEventInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateEventInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"desc":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"from":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"to":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"location_id": &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"user_id":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	addLocationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddLocationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"desc": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"lat":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"lng":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})
	updateLocationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateLocationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"desc": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"lat":  &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"lng":  &graphql.InputObjectFieldConfig{Type: graphql.Float},
		},
	})

	addParticipantInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddParticipantInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"user_id":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"event_id": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	updateParticipantInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateParticipantInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"user_id":  &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"event_id": &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			// ===== User =====
			"addUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(addUserInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var req user.CreateUserRequest
					if err := decodeInput(p.Args["data"], &req); err != nil {
						return nil, err
					}
					return r.Users.Create(p.Context, req, middleware.IPFromContext(p.Context))
				},
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateUserInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					var req user.UpdateUserRequest
					if err := decodeInput(p.Args["data"], &req); err != nil {
						return nil, err
					}
					u, err := r.Users.Update(p.Context, id, req, middleware.IPFromContext(p.Context))
					if err != nil {
						return nil, mapErr(err, "user", id)
					}
					return u, nil
				},
			},
			"deleteUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					u, err := r.Users.Delete(p.Context, id, middleware.IPFromContext(p.Context))
					if err != nil {
						return nil, mapErr(err, "user", id)
					}
					return u, nil
				},
			},
			"deleteAllUsers": &graphql.Field{
				Type: graphql.NewNonNull(deleteAllType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					count := r.Users.DeleteAll(p.Context, middleware.IPFromContext(p.Context))
					return map[string]interface{}{"count": count}, nil
				},
			},

			// ===== Event =====
			"addEvent": &graphql.Field{
				Type: graphql.NewNonNull(eventType),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(addEventInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var req event.CreateEventRequest
					if err := decodeInput(p.Args["data"], &req); err != nil {
						return nil, err
					}
					return r.Events.Create(p.Context, req, middleware.IPFromContext(p.Context))
				},
			},
			"updateEvent": &graphql.Field{
				Type: graphql.NewNonNull(eventType),
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateEventInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					var req event.UpdateEventRequest
					if err := decodeInput(p.Args["data"], &req); err != nil {
						return nil, err
					}
					e, err := r.Events.Update(p.Context, id, req, middleware.IPFromContext(p.Context))
					if err != nil {
						return nil, mapErr(err, "event", id)
					}
					return e, nil
				},
			},
			"deleteEvent": &graphql.Field{
				Type: graphql.NewNonNull(eventType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					e, err := r.Events.Delete(p.Context, id, middleware.IPFromContext(p.Context))
					if err != nil {
						return nil, mapErr(err, "event", id)
					}
					return e, nil
				},
			},
			"deleteAllEvents": &graphql.Field{
				Type: graphql.NewNonNull(deleteAllType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					count := r.Events.DeleteAll(p.Context, middleware.IPFromContext(p.Context))
					return map[string]interface{}{"count": count}, nil
				},
			},

			// ===== Location =====
			"addLocation": &graphql.Field{
				Type: graphql.NewNonNull(locationType),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(addLocationInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var req location.CreateLocationRequest
					if err := decodeInput(p.Args["data"], &req); err != nil {
						return nil, err
					}
					return r.Locations.Create(p.Context, req, middleware.IPFromContext(p.Context))
				},
			},
			"updateLocation": &graphql.Field{
				Type: graphql.NewNonNull(locationType),
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateLocationInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					var req location.UpdateLocationRequest
					if err := decodeInput(p.Args["data"], &req); err != nil {
						return nil, err
					}
					l, err := r.Locations.Update(p.Context, id, req, middleware.IPFromContext(p.Context))
					if err != nil {
						return nil, mapErr(err, "location", id)
					}
					return l, nil
				},
			},
			"deleteLocation": &graphql.Field{
				Type: graphql.NewNonNull(locationType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					l, err := r.Locations.Delete(p.Context, id, middleware.IPFromContext(p.Context))
					if err != nil {
						return nil, mapErr(err, "location", id)
					}
					return l, nil
				},
			},
			"deleteAllLocations": &graphql.Field{
				Type: graphql.NewNonNull(deleteAllType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					count := r.Locations.DeleteAll(p.Context, middleware.IPFromContext(p.Context))
					return map[string]interface{}{"count": count}, nil
				},
			},

			// ===== Participant =====
			"addParticipant": &graphql.Field{
				Type: graphql.NewNonNull(participantType),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(addParticipantInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var req participant.CreateParticipantRequest
					if err := decodeInput(p.Args["data"], &req); err != nil {
						return nil, err
					}
					return r.Participants.Create(p.Context, req, middleware.IPFromContext(p.Context))
				},
			},
			"updateParticipant": &graphql.Field{
				Type: graphql.NewNonNull(participantType),
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateParticipantInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					var req participant.UpdateParticipantRequest
					if err := decodeInput(p.Args["data"], &req); err != nil {
						return nil, err
					}
					pt, err := r.Participants.Update(p.Context, id, req, middleware.IPFromContext(p.Context))
					if err != nil {
						return nil, mapErr(err, "participant", id)
					}
					return pt, nil
				},
			},
			"deleteParticipant": &graphql.Field{
				Type: graphql.NewNonNull(participantType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					pt, err := r.Participants.Delete(p.Context, id, middleware.IPFromContext(p.Context))
					if err != nil {
						return nil, mapErr(err, "participant", id)
					}
					return pt, nil
				},
			},
			"deleteAllParticipants": &graphql.Field{
				Type: graphql.NewNonNull(deleteAllType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					count := r.Participants.DeleteAll(p.Context, middleware.IPFromContext(p.Context))
					return map[string]interface{}{"count": count}, nil
				},
			},
		},
	})

	// One subscription per <entity><Created|Updated>. Deletes publish
	// nothing; that asymmetry is part of the contract.
	passthrough := func(p graphql.ResolveParams) (interface{}, error) {
		return p.Source, nil
	}
	subscription := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"userCreated": &graphql.Field{
				Type:      graphql.NewNonNull(userType),
				Resolve:   passthrough,
				Subscribe: r.subscribeTo(user.TopicCreated, func() interface{} { return &user.User{} }),
			},
			"userUpdated": &graphql.Field{
				Type:      graphql.NewNonNull(userType),
				Resolve:   passthrough,
				Subscribe: r.subscribeTo(user.TopicUpdated, func() interface{} { return &user.User{} }),
			},
			"eventCreated": &graphql.Field{
				Type:      graphql.NewNonNull(eventType),
				Resolve:   passthrough,
				Subscribe: r.subscribeTo(event.TopicCreated, func() interface{} { return &event.Event{} }),
			},
			"eventUpdated": &graphql.Field{
				Type:      graphql.NewNonNull(eventType),
				Resolve:   passthrough,
				Subscribe: r.subscribeTo(event.TopicUpdated, func() interface{} { return &event.Event{} }),
			},
			"locationCreated": &graphql.Field{
				Type:      graphql.NewNonNull(locationType),
				Resolve:   passthrough,
				Subscribe: r.subscribeTo(location.TopicCreated, func() interface{} { return &location.Location{} }),
			},
			"locationUpdated": &graphql.Field{
				Type:      graphql.NewNonNull(locationType),
				Resolve:   passthrough,
				Subscribe: r.subscribeTo(location.TopicUpdated, func() interface{} { return &location.Location{} }),
			},
			"participantCreated": &graphql.Field{
				Type:      graphql.NewNonNull(participantType),
				Resolve:   passthrough,
				Subscribe: r.subscribeTo(participant.TopicCreated, func() interface{} { return &participant.Participant{} }),
			},
			"participantUpdated": &graphql.Field{
				Type:      graphql.NewNonNull(participantType),
				Resolve:   passthrough,
				Subscribe: r.subscribeTo(participant.TopicUpdated, func() interface{} { return &participant.Participant{} }),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:        query,
		Mutation:     mutation,
		Subscription: subscription,
	})
}
