// Package graphql exposes the event catalog to authenticated callers.
// Every resolver derives the acting user from the verified identity the
// auth middleware stored in the request context.
package graphql

// Schema is the full SDL served on /graphql. startsAt is a unix timestamp
// in seconds, kept as Float for wire compatibility with existing clients.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		"""All events in the catalog."""
		events: [Event!]!
		"""Events linked to the authenticated user."""
		userEvents: [Event!]!
	}

	type Mutation {
		"""Creates an event owned by the authenticated user."""
		createEvent(input: NewEvent!): Event!
	}

	type Event {
		id: ID!
		name: String!
		description: String
		longitude: Float!
		latitude: Float!
		startsAt: Float!
	}

	input NewEvent {
		name: String!
		description: String
		longitude: Float!
		latitude: Float!
		startsAt: Float!
	}
`
