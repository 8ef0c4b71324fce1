package graphql

// schemaSDL is the surface served to the client. Payload fields mirror the
// selection sets the client sends.
const schemaSDL = `
schema {
	query: Query
	mutation: Mutation
}

type Query {
	ping: String!
	searchBusinesses(input: SearchBusinessesInput): BusinessSearchResult!
}

type Mutation {
	login(input: LoginInput!): LoginPayload!
	signup(input: SignupInput!): SignupPayload!
	verifyEmail(token: String!): VerifyPayload!
	resendVerification(email: String!): VerifyPayload!
}

input LoginInput {
	email: String!
	password: String!
}

input SignupInput {
	email: String!
	password: String!
	name: String
}

input SearchBusinessesInput {
	query: String
	category: String
	limit: Int
	offset: Int
}

type User {
	id: ID!
	email: String!
	name: String
	role: String!
}

type LoginPayload {
	token: String!
	user: User!
}

type SignupPayload {
	message: String!
	requiresVerification: Boolean!
	userId: ID!
}

type VerifyPayload {
	success: Boolean!
	message: String!
}

type Business {
	id: ID!
	businessName: String!
	slug: String!
	category: String!
	city: String
	rating: Float
	totalReviews: Int!
	isVerified: Boolean!
}

type BusinessSearchResult {
	businesses: [Business!]!
	total: Int!
	hasMore: Boolean!
}
`
